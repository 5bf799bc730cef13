package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simple-note/internal/dto"
	"simple-note/internal/model"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/pkg/serverutils"
	"simple-note/internal/repository/unitofwork"
	"simple-note/internal/service"
	"simple-note/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countingService records whether the store-facing service was reached.
type countingService struct {
	service.INoteService
	calls int
}

func (s *countingService) Show(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	s.calls++
	return s.INoteService.Show(ctx, id)
}

func (s *countingService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	s.calls++
	return s.INoteService.Update(ctx, req)
}

func (s *countingService) Delete(ctx context.Context, id int64) error {
	s.calls++
	return s.INoteService.Delete(ctx, id)
}

func setupApp(t *testing.T) (*fiber.App, *countingService, *gorm.DB) {
	t.Helper()
	db, err := database.NewInMemoryDB(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.NewNopLogger()
	svc := &countingService{
		INoteService: service.NewNoteService(unitofwork.NewRepositoryFactory(db), nil, nil, log),
	}

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	NewHealthController(service.NewHealthService(db), log).RegisterRoutes(api)
	NewNoteController(svc).RegisterRoutes(api)

	return app, svc, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeNote(t *testing.T, raw []byte) dto.NoteResponse {
	t.Helper()
	var note dto.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &note))
	return note
}

func decodeError(t *testing.T, raw []byte) string {
	t.Helper()
	var res serverutils.BaseResponse[any]
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.False(t, res.Success)
	return res.Error
}

func TestNoteController_Create(t *testing.T) {
	app, _, _ := setupApp(t)

	t.Run("Success trims and nulls title", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/notes", `{"content":" hi ","title":""}`)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		note := decodeNote(t, raw)
		assert.NotZero(t, note.Id)
		assert.Equal(t, "hi", note.Content)
		assert.Nil(t, note.Title)
		assert.Contains(t, string(raw), `"title":null`)
	})

	t.Run("Blank content", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/notes", `{"content":"   "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Content is required", decodeError(t, raw))
	})

	t.Run("Missing content", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/notes", `{"title":"only"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Content is required", decodeError(t, raw))
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/notes", `{"content":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request body", decodeError(t, raw))
	})
}

func TestNoteController_List(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, raw := doRequest(t, app, "GET", "/api/notes", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	doRequest(t, app, "POST", "/api/notes", `{"content":"first"}`)
	doRequest(t, app, "POST", "/api/notes", `{"content":"second","title":"T"}`)

	_, raw = doRequest(t, app, "GET", "/api/notes", "")
	var notes []dto.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Content)
	assert.Equal(t, "first", notes[1].Content)
}

func TestNoteController_InvalidIdentifierBeforeStore(t *testing.T) {
	app, svc, _ := setupApp(t)

	for _, tc := range []struct{ method, body string }{
		{"GET", ""},
		{"PUT", `{"content":"x"}`},
		{"PUT", `not even json`},
		{"DELETE", ""},
	} {
		resp, raw := doRequest(t, app, tc.method, "/api/notes/abc", tc.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, tc.method)
		assert.Equal(t, "Invalid note ID", decodeError(t, raw))
	}
	assert.Zero(t, svc.calls)
}

func TestNoteController_NotFound(t *testing.T) {
	app, _, _ := setupApp(t)

	for _, tc := range []struct{ method, body string }{
		{"GET", ""},
		{"PUT", `{"content":"x"}`},
		{"DELETE", ""},
	} {
		resp, raw := doRequest(t, app, tc.method, "/api/notes/999", tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method)
		assert.Equal(t, "Note not found", decodeError(t, raw))
	}
}

func TestNoteController_UpdatePartial(t *testing.T) {
	app, _, _ := setupApp(t)

	_, raw := doRequest(t, app, "POST", "/api/notes", `{"content":"buy milk","title":"Groceries"}`)
	created := decodeNote(t, raw)
	path := "/api/notes/" + jsonNumber(created.Id)

	resp, raw := doRequest(t, app, "PUT", path, `{"content":"buy bread"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeNote(t, raw)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Groceries", *updated.Title)
	assert.Equal(t, "buy bread", updated.Content)

	resp, raw = doRequest(t, app, "PUT", path, `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Content cannot be empty", decodeError(t, raw))

	resp, raw = doRequest(t, app, "PUT", path, `{"title":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := decodeNote(t, raw)
	assert.Nil(t, cleared.Title)
	assert.Equal(t, "buy bread", cleared.Content)
}

func TestNoteController_StoreFailureIsGeneric(t *testing.T) {
	app, _, db := setupApp(t)
	require.NoError(t, database.Close(db))

	resp, raw := doRequest(t, app, "GET", "/api/notes", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to fetch notes", decodeError(t, raw))

	resp, raw = doRequest(t, app, "GET", "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Database unavailable", decodeError(t, raw))
}

func TestHealthController_OK(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, raw := doRequest(t, app, "GET", "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, string(raw))
}

func jsonNumber(id int64) string {
	out, _ := json.Marshal(id)
	return string(out)
}
