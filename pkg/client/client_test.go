package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   map[string]interface{}
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.body = nil
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", time.Second), rec
}

func strPtr(s string) *string { return &s }

func TestClient_ListNotes(t *testing.T) {
	c, rec := newTestServer(t, 200, `[{"id":2,"title":null,"content":"b","createdAt":"2024-01-02T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"},{"id":1,"title":"T","content":"a","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`)

	notes, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GET", rec.method)
	assert.Equal(t, "/api/notes", rec.path)
	require.Len(t, notes, 2)
	assert.Nil(t, notes[0].Title)
	assert.Equal(t, "T", *notes[1].Title)
}

func TestClient_CreateNote(t *testing.T) {
	c, rec := newTestServer(t, 201, `{"id":5,"title":"Groceries","content":"milk","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`)

	note, err := c.CreateNote(context.Background(), CreateNoteInput{Title: strPtr("Groceries"), Content: "milk"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), note.Id)
	assert.Equal(t, "POST", rec.method)
	assert.Equal(t, map[string]interface{}{"title": "Groceries", "content": "milk"}, rec.body)
}

func TestClient_UpdateNoteSendsOnlySuppliedFields(t *testing.T) {
	c, rec := newTestServer(t, 200, `{"id":5,"title":null,"content":"milk","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`)

	_, err := c.UpdateNote(context.Background(), 5, UpdateNoteInput{ClearTitle: true})
	require.NoError(t, err)
	assert.Equal(t, "PUT", rec.method)
	assert.Equal(t, "/api/notes/5", rec.path)
	assert.Equal(t, map[string]interface{}{"title": nil}, rec.body)

	_, err = c.UpdateNote(context.Background(), 5, UpdateNoteInput{Content: strPtr("bread")})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"content": "bread"}, rec.body)
}

func TestClient_DeleteNote(t *testing.T) {
	c, rec := newTestServer(t, 200, `{"success":true}`)

	require.NoError(t, c.DeleteNote(context.Background(), 9))
	assert.Equal(t, "DELETE", rec.method)
	assert.Equal(t, "/api/notes/9", rec.path)
}

func TestClient_APIErrorCarriesServerMessage(t *testing.T) {
	c, _ := newTestServer(t, 404, `{"success":false,"error":"Note not found"}`)

	_, err := c.GetNote(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Note not found", Message(err))
}

func TestClient_APIErrorWithoutEnvelope(t *testing.T) {
	c, _ := newTestServer(t, 502, `bad gateway`)

	_, err := c.ListNotes(context.Background())
	assert.Equal(t, "Bad Gateway", Message(err))
}

func TestClient_WebSocketURL(t *testing.T) {
	c := NewClient("http://localhost:3000/api", 0)
	u, err := c.WebSocketURL()
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:3000/api/notes/ws", u)

	c = NewClient("https://notes.example.com/api/", 0)
	u, err = c.WebSocketURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://notes.example.com/api/notes/ws", u)
}
