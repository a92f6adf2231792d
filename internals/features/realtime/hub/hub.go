package hub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cra_backend/internals/helpers/zlog"
)

const (
	EventRefreshAvailable = "refresh_available"
	EventNotification     = "notification"
	EventThemeChanged     = "theme_changed"
)

// Event is what clients receive. Appointment events never carry row data:
// clients only learn that something changed and offer a refresh.
type Event struct {
	Type   string     `json:"type"`
	Table  string     `json:"table,omitempty"`
	Op     string     `json:"op,omitempty"`
	Data   any        `json:"data,omitempty"`
	UnitID *uuid.UUID `json:"-"` // nil = every unit
}

// Client is one websocket connection. All is set for SUPER_ADMIN.
type Client struct {
	UserID uuid.UUID
	UnitID *uuid.UUID
	All    bool

	send      chan []byte
	closeOnce sync.Once
}

func NewClient(userID uuid.UUID, unitID *uuid.UUID, all bool) *Client {
	return &Client{
		UserID: userID,
		UnitID: unitID,
		All:    all,
		send:   make(chan []byte, 32),
	}
}

// Send is closed when the client is unregistered.
func (c *Client) Send() <-chan []byte { return c.send }

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *Client) wants(e Event) bool {
	if c.All || e.UnitID == nil {
		return true
	}
	return c.UnitID != nil && *c.UnitID == *e.UnitID
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func New() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.close()
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers e to every interested client and returns how many got
// it. A client whose buffer is full is dropped; it reconnects and refreshes.
func (h *Hub) Broadcast(e Event) int {
	payload, err := sonic.Marshal(e)
	if err != nil {
		zlog.Error("realtime: marshal event failed", zap.String("type", e.Type), zap.Error(err))
		return 0
	}

	var slow []*Client
	delivered := 0

	h.mu.RLock()
	for c := range h.clients {
		if !c.wants(e) {
			continue
		}
		select {
		case c.send <- payload:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		zlog.Warn("realtime: dropping slow client", zap.String("user_id", c.UserID.String()))
		h.Unregister(c)
	}
	return delivered
}

// Close unregisters every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()
	for c := range clients {
		c.close()
	}
}
