package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps one cart per session, keyed by the authenticated user id.
// Carts live in memory only; they are created on first access and dropped
// when the session's checkout completes.
type Store struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the cart for sessionID, creating an empty one if needed.
func (s *Store) Get(sessionID uuid.UUID) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// Drop forgets the cart for sessionID.
func (s *Store) Drop(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
