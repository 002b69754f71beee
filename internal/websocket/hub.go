package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is the wire envelope pushed to clients
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maintains the set of active clients keyed by user identity. One user
// may hold several sessions at once (tabs, devices); a publish to a user
// addresses every session registered under that id.
type Hub struct {
	// All connected sessions, identified or not
	clients map[*Client]bool

	// UserID -> set of sessions for that user
	users map[uint]map[*Client]bool

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Mutex for thread-safe access to the maps
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		users:      make(map[uint]map[*Client]bool),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if client.UserID != 0 {
				sessions, ok := h.users[client.UserID]
				if !ok {
					sessions = make(map[*Client]bool)
					h.users[client.UserID] = sessions
				}
				sessions[client] = true
				log.Printf("🟢 User %d registered session %s (%d active)", client.UserID, client.SessionID, len(sessions))
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			if client.UserID != 0 {
				if sessions, ok := h.users[client.UserID]; ok {
					delete(sessions, client)
					if len(sessions) == 0 {
						delete(h.users, client.UserID)
					}
				}
				log.Printf("🔴 User %d session %s disconnected", client.UserID, client.SessionID)
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers an event to every session of one user. Returns false
// when the user has no connected session or the payload cannot be encoded;
// delivery is best-effort, durability lives in the notification table.
//
// The sends run under the read lock: Run closes a session's send channel
// under the write lock on unregister, so a session reached here is live.
// The sends are non-blocking selects, holding the lock cannot deadlock.
func (h *Hub) SendToUser(userID uint, event string, payload interface{}) bool {
	jsonMsg, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling event %q: %v", event, err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for c := range h.users[userID] {
		select {
		case c.send <- jsonMsg:
			delivered = true
		default:
			// Buffer full or client dead
		}
	}
	return delivered
}

// Broadcast delivers an event to every connected session. Sends stay under
// the read lock for the same reason as SendToUser.
func (h *Hub) Broadcast(event string, payload interface{}) {
	jsonMsg, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling event %q: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- jsonMsg:
		default:
		}
	}
}
