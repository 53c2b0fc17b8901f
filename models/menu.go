package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type MenuItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Image        string          `db:"image" json:"image"`
	CategoryID   uuid.UUID       `db:"category_id" json:"category_id"`
	CategoryName string          `db:"category_name" json:"category_name"`
	Available    bool            `db:"is_available" json:"available"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// MenuSection groups the items of one category for display.
type MenuSection struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}
