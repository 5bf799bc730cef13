package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"simple-note/internal/pkg/logger"
	"simple-note/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, "note_events", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func newClient(hub *Hub, id string, buffer int) *Client {
	return &Client{Id: id, Hub: hub, Send: make(chan []byte, buffer)}
}

func TestHub_PublishReachesRegisteredClients(t *testing.T) {
	hub, _ := startHub(t)
	a := newClient(hub, "a", 4)
	b := newClient(hub, "b", 4)
	require.True(t, hub.Register(a))
	require.True(t, hub.Register(b))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), events.New(events.NoteCreated, map[string]interface{}{"id": 1})))

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			evt, err := events.Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, events.NoteCreated, evt.EventType())
		case <-time.After(time.Second):
			t.Fatalf("client %s received nothing", c.Id)
		}
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub, _ := startHub(t)
	slow := newClient(hub, "slow", 1)
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	evt := events.New(events.NoteDeleted, nil)
	require.NoError(t, hub.Publish(context.Background(), evt))
	require.NoError(t, hub.Publish(context.Background(), evt))

	assert.Equal(t, 0, hub.ClientCount())

	// Buffered frame is still readable, then the channel reports closed.
	_, ok := <-slow.Send
	assert.True(t, ok)
	_, ok = <-slow.Send
	assert.False(t, ok)

	// A late unregister for the same client must not close Send twice.
	assert.NotPanics(t, func() { hub.Unregister(slow) })
}

func TestHub_ClusterMessageFromOtherInstance(t *testing.T) {
	hub, _ := startHub(t)
	c := newClient(hub, "c", 4)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	raw, err := events.Encode(events.New(events.NoteUpdated, nil))
	require.NoError(t, err)

	own, _ := json.Marshal(clusterMessage{Origin: hub.instanceID, Message: raw})
	hub.handleClusterMessage(string(own))
	assert.Len(t, c.Send, 0)

	other, _ := json.Marshal(clusterMessage{Origin: "another-instance", Message: raw})
	hub.handleClusterMessage(string(other))
	assert.Len(t, c.Send, 1)

	hub.handleClusterMessage("not json")
	assert.Len(t, c.Send, 1)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, cancel := startHub(t)
	c := newClient(hub, "c", 1)
	require.True(t, hub.Register(c))

	cancel()

	select {
	case _, ok := <-c.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed on shutdown")
	}
	assert.False(t, hub.Register(newClient(hub, "late", 1)))
}
