package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"simple-note/internal/pkg/logger"
	"simple-note/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterMessage is what instances exchange over Redis. Origin lets an
// instance skip events it already delivered locally.
type clusterMessage struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients keyed by connection id
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, nil when running alone
	rdb        *redis.Client
	channel    string
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, channel string, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		channel:    channel,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Run owns client registration until ctx is cancelled, then closes every
// remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.Id, "clients": total})

		case client := <-h.unregister:
			h.remove(client)

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// remove is idempotent so that Send is closed exactly once no matter how
// many paths decide to drop the client.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.Id]; !ok {
		return
	}
	delete(h.clients, client.Id)
	close(client.Send)
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.Id, "clients": len(h.clients)})
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish delivers an event to local clients and, when Redis is configured,
// to the clients of every other instance.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := events.Encode(event)
	if err != nil {
		return err
	}

	h.broadcastLocal(data)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(clusterMessage{Origin: h.instanceID, Message: data})
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, h.channel, payload).Err()
}

func (h *Hub) broadcastLocal(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, dropping client", map[string]interface{}{"client_id": client.Id})
		h.remove(client)
	}
}

func (h *Hub) handleClusterMessage(payload string) {
	var msg clusterMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err})
		return
	}
	if msg.Origin == h.instanceID {
		return
	}
	h.broadcastLocal(msg.Message)
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleClusterMessage(msg.Payload)
		}
	}
}
