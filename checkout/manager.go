package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/billing"
	"github.com/ffoods/quickbill/cart"
)

// Manager holds at most one checkout session per user and serializes all
// operations on it. Finished sessions (completed or cancelled) are replaced
// on the next Begin.
type Manager struct {
	// SubmitFn, when set, replaces the default order submission gate of
	// every new session. Tests use it to skip the simulated delay.
	SubmitFn func(ctx context.Context) error

	mu       sync.Mutex
	carts    *cart.Store
	sessions map[uuid.UUID]*Session
	sink     Exporter
}

func NewManager(carts *cart.Store, sink Exporter) *Manager {
	return &Manager{
		carts:    carts,
		sessions: make(map[uuid.UUID]*Session),
		sink:     sink,
	}
}

// Begin starts a checkout for the user's cart.
func (m *Manager) Begin(ctx context.Context, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		switch s.state {
		case StateCollecting, StateRendering:
			// resume the in-flight checkout rather than double-submitting
			return s, nil
		}
	}

	s := NewSession(m.carts.Get(userID))
	if m.SubmitFn != nil {
		s.SubmitFn = m.SubmitFn
	}
	s.OnComplete = func() {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"order_id": s.orderID,
		}).Info("checkout completed")
	}
	if err := s.Begin(ctx); err != nil {
		return nil, err
	}
	m.sessions[userID] = s
	return s, nil
}

func (m *Manager) SetCustomer(userID uuid.UUID, info billing.CustomerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	return s.SetCustomer(info)
}

func (m *Manager) Export(ctx context.Context, userID uuid.UUID, enc billing.Encoding) (*Session, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, nil, ErrNoSession
	}
	doc, err := s.Export(ctx, enc, m.sink)
	return s, doc, err
}

func (m *Manager) Cancel(userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return ErrNoSession
	}
	return s.Cancel()
}

// Get returns the user's session, if any.
func (m *Manager) Get(userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}
