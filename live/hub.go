// Package live serves the interactive restaurant search box over websockets.
// Every connection owns its own Autocomplete state; the hub only tracks open
// sessions so they can be closed on shutdown.
package live

import (
	"sync"

	"github.com/yeremiapane/protein-finder/utils"
)

// Event types
const (
	EventSuggestions = "suggestions"
	EventSelected    = "selected"
	EventError       = "error"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Hub struct {
	sessions map[*Session]struct{}
	mutex    sync.Mutex
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[*Session]struct{})}
}

func (h *Hub) Register(s *Session) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.sessions[s] = struct{}{}
}

// Unregister forgets the session and closes its connection.
func (h *Hub) Unregister(s *Session) {
	h.mutex.Lock()
	_, ok := h.sessions[s]
	delete(h.sessions, s)
	h.mutex.Unlock()

	if ok {
		s.close()
	}
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.sessions)
}

// CloseAll sends a going-away close frame to every session and drops them.
func (h *Hub) CloseAll() {
	h.mutex.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[*Session]struct{})
	h.mutex.Unlock()

	for _, s := range sessions {
		s.goAway()
	}
	utils.InfoLogger.Printf("Closed %d live autocomplete sessions", len(sessions))
}
