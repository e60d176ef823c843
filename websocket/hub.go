package websocket

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kamranabbasi3404/Ecommerce-Buyonix-sub001/chat"
)

// Hub is the process-wide room registry: conversation id -> the set of
// live connections currently viewing that conversation. It is an
// explicit object handed to the handler, never a package singleton, so
// tests construct a fresh one per case.
type Hub struct {
	service *chat.Service
	logger  *zap.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
	// rooms joined per client, for cleanup on disconnect
	clients map[*Client]map[string]bool
}

func NewHub(service *chat.Service, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		service: service,
		logger:  logger,
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[*Client]map[string]bool),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = make(map[string]bool)
	h.mu.Unlock()
	h.logger.Debug("channel client connected", zap.String("partyId", c.partyID))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	joined, ok := h.clients[c]
	if ok {
		for room := range joined {
			h.removeFromRoom(c, room)
		}
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Debug("channel client disconnected", zap.String("partyId", c.partyID))
	}
}

// Join subscribes a connection to a conversation's room. Joining a room
// the connection is already in is a no-op.
func (h *Hub) Join(c *Client, conversationID string) {
	if conversationID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	joined, ok := h.clients[c]
	if !ok {
		return
	}
	if joined[conversationID] {
		return
	}
	joined[conversationID] = true
	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = make(map[*Client]bool)
	}
	h.rooms[conversationID][c] = true
}

// Leave unsubscribes without closing the connection. Leaving a room
// never joined is a no-op.
func (h *Hub) Leave(c *Client, conversationID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if joined, ok := h.clients[c]; ok {
		delete(joined, conversationID)
	}
	h.removeFromRoom(c, conversationID)
}

// removeFromRoom requires h.mu to be held.
func (h *Hub) removeFromRoom(c *Client, conversationID string) {
	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}

// broadcast delivers data to every subscriber of the room, skipping
// except if non-nil. The read lock is held across the sends so a
// concurrent unregister cannot close a send channel mid-fan-out; the
// sends themselves never block because a client whose buffer is full is
// dropped rather than allowed to stall the room.
func (h *Hub) broadcast(conversationID string, data []byte, except *Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[conversationID] {
		if c == except {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow channel client",
				zap.String("partyId", c.partyID),
				zap.String("conversationId", conversationID))
			c.conn.Close()
		}
	}
}

// RoomSize reports the current subscriber count of a room.
func (h *Hub) RoomSize(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[conversationID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades the request and runs the client pumps. The party id
// is caller-supplied (the auth gate already ran); the channel trusts it
// the same way the HTTP surface does.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			hub:     hub,
			conn:    conn,
			send:    make(chan []byte, 256),
			partyID: r.URL.Query().Get("partyId"),
		}
		hub.register(client)

		go client.writePump()
		go client.readPump()
	}
}
