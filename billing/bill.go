package billing

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ffoods/quickbill/cart"
)

var ErrEmptyCart = errors.New("cannot compose a bill for an empty cart")

// TaxRate is the flat tax applied to every bill.
var TaxRate = decimal.RequireFromString("0.08")

// Currency is the symbol used on every rendered bill.
const Currency = "₹"

type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type LineItem struct {
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
}

// Snapshot is a bill computed once at checkout time. It owns copies of the
// cart lines, so later cart mutation never changes an issued bill.
type Snapshot struct {
	OrderID    string          `json:"order_id"`
	Customer   CustomerInfo    `json:"customer"`
	Lines      []LineItem      `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	IssuedAt   time.Time       `json:"issued_at"`
}

// Compose prices the given cart entries into an immutable Snapshot.
// subtotal = sum of line amounts, tax = subtotal * TaxRate,
// grand total = subtotal + tax. An empty entry list is rejected.
// When orderID is empty a fresh one is generated.
func Compose(entries []cart.Entry, customer CustomerInfo, orderID string) (*Snapshot, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCart
	}
	if orderID == "" {
		orderID = NewOrderID()
	}

	lines := make([]LineItem, 0, len(entries))
	subtotal := decimal.Zero
	for _, e := range entries {
		amount := e.LineAmount()
		lines = append(lines, LineItem{
			Name:         e.Item.Name,
			CategoryName: e.Item.CategoryName,
			UnitPrice:    e.Item.Price,
			Quantity:     e.Quantity,
			Amount:       amount,
		})
		subtotal = subtotal.Add(amount)
	}

	tax := subtotal.Mul(TaxRate)
	return &Snapshot{
		OrderID:    orderID,
		Customer:   customer,
		Lines:      lines,
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal.Add(tax),
		IssuedAt:   time.Now(),
	}, nil
}

// NewOrderID generates a six digit order identifier with the ORD- prefix.
// Orders are not persisted, so collisions only matter within a session.
func NewOrderID() string {
	return fmt.Sprintf("ORD-%06d", 100000+rand.Intn(900000))
}

// Filename is the suggested name for a downloaded copy of the bill.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("Bill-%s.html", s.OrderID)
}
