// Package hub is the in-process publish/subscribe registry that propagates
// player-card changes to interested views. It is explicitly constructed and
// injected rather than living as ambient global state, delivery is
// synchronous and best-effort, and no history is retained: a subscriber that
// registers after a publish will not see it and must fetch current state
// first.
package hub

import (
	"log"
	"sync"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

// Handler receives a player card snapshot after the projection updated it
type Handler func(playerID string, card *models.PlayerCard)

// Hub fans player-card updates out to registered handlers
type Hub struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
}

// New creates an empty hub
func New() *Hub {
	return &Hub{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its token
func (h *Hub) Subscribe(handler Handler) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	token := h.next
	h.handlers[token] = handler
	return token
}

// Unsubscribe removes the handler for a token. Unknown tokens are ignored.
func (h *Hub) Unsubscribe(token int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.handlers, token)
}

// Len returns the number of registered handlers
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.handlers)
}

// Publish delivers the snapshot to every handler synchronously. A handler
// that panics is logged and skipped; the remaining handlers still run and
// Publish itself never fails.
func (h *Hub) Publish(playerID string, card *models.PlayerCard) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	for _, handler := range handlers {
		deliver(handler, playerID, card)
	}
}

func deliver(handler Handler, playerID string, card *models.PlayerCard) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Player card subscriber panicked for player %s: %v", playerID, r)
		}
	}()
	handler(playerID, card)
}
