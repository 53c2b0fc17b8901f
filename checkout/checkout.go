package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ffoods/quickbill/billing"
	"github.com/ffoods/quickbill/cart"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrExportFailed      = errors.New("bill export failed")
	ErrNoSession         = errors.New("no active checkout session")
)

// State of a checkout session. A session moves Idle -> CollectingCustomerInfo
// -> Rendering -> Completed; Cancelled is a distinct terminal state that
// leaves the cart intact so the order can be resumed or discarded explicitly.
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting_customer_info"
	StateRendering  State = "rendering"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

// submitDelay models the order-submission round trip that gates the
// customer info step.
const submitDelay = 1500 * time.Millisecond

// exportTimeout bounds each call into a host export sink.
const exportTimeout = 10 * time.Second

// Exporter delivers a rendered bill to a host-provided sink: the print
// subsystem, a file save, or the clipboard.
type Exporter interface {
	Export(ctx context.Context, snap *billing.Snapshot, enc billing.Encoding, doc []byte) error
}

// Session drives one cart through checkout. It owns the order id for the
// attempt; the bill snapshot is composed fresh at each export so it always
// reflects the customer info entered so far, while the cart itself is frozen
// by the collecting state.
type Session struct {
	// SubmitFn gates Begin; the default simulates the order submission
	// call. Overridable in tests.
	SubmitFn func(ctx context.Context) error
	// OnComplete fires exactly once, after the first terminal export.
	OnComplete func()

	cart      *cart.Cart
	state     State
	orderID   string
	customer  billing.CustomerInfo
	snapshot  *billing.Snapshot
	completed bool
}

func NewSession(c *cart.Cart) *Session {
	return &Session{
		cart:    c,
		state:   StateIdle,
		orderID: billing.NewOrderID(),
		SubmitFn: func(ctx context.Context) error {
			select {
			case <-time.After(submitDelay):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

func (s *Session) State() State                   { return s.state }
func (s *Session) OrderID() string                { return s.orderID }
func (s *Session) Customer() billing.CustomerInfo { return s.customer }

// Snapshot returns the bill composed by the most recent export, if any.
func (s *Session) Snapshot() *billing.Snapshot { return s.snapshot }

// Begin submits the order and opens the customer info step. Fails on an
// empty cart before the submission is attempted.
func (s *Session) Begin(ctx context.Context) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, s.state)
	}
	if s.cart.IsEmpty() {
		return billing.ErrEmptyCart
	}
	if err := s.SubmitFn(ctx); err != nil {
		return fmt.Errorf("submit order: %w", err)
	}
	s.state = StateCollecting
	return nil
}

// SetCustomer records the customer info fields. Both are optional free text.
func (s *Session) SetCustomer(info billing.CustomerInfo) error {
	if s.state != StateCollecting {
		return fmt.Errorf("%w: set customer from %s", ErrInvalidTransition, s.state)
	}
	s.customer = info
	return nil
}

// Export composes the bill and hands the rendered document to the sink.
// Print and download are terminal actions: on success the cart is cleared
// and OnComplete fires. A clipboard copy leaves the session collecting so
// the user can still print or download. A sink failure returns the session
// to the collecting state with the cart intact, so the export can be
// retried.
func (s *Session) Export(ctx context.Context, enc billing.Encoding, sink Exporter) ([]byte, error) {
	if s.state != StateCollecting {
		return nil, fmt.Errorf("%w: export from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateRendering

	snap, err := billing.Compose(s.cart.Entries(), s.customer, s.orderID)
	if err != nil {
		s.state = StateCollecting
		return nil, err
	}
	doc, err := billing.Render(snap, enc)
	if err != nil {
		s.state = StateCollecting
		return nil, err
	}

	if sink != nil {
		exportCtx, cancel := context.WithTimeout(ctx, exportTimeout)
		defer cancel()
		if err := sink.Export(exportCtx, snap, enc, doc); err != nil {
			s.state = StateCollecting
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}

	s.snapshot = snap
	if enc == billing.EncodingClipboard {
		s.state = StateCollecting
		return doc, nil
	}

	s.state = StateCompleted
	s.cart.Clear()
	s.fireComplete()
	return doc, nil
}

// Cancel dismisses the customer info step without exporting. The cart is
// deliberately kept: dismissing the dialog is not order completion.
func (s *Session) Cancel() error {
	if s.state != StateCollecting {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateCancelled
	return nil
}

func (s *Session) fireComplete() {
	if s.completed {
		return
	}
	s.completed = true
	if s.OnComplete != nil {
		s.OnComplete()
	}
}
