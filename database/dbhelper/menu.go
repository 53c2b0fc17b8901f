package dbhelper

import (
	"github.com/google/uuid"

	"github.com/ffoods/quickbill/database"
	"github.com/ffoods/quickbill/models"
)

// ListMenuItems returns the whole catalog with category names resolved,
// in stable catalog order.
func ListMenuItems() ([]models.MenuItem, error) {
	rows, err := database.QuickBill.Query(`
		SELECT m.id, m.name, m.description, m.price, m.image,
		       m.category_id, c.name, m.is_available, m.created_at
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.archived_at IS NULL
		ORDER BY c.position, m.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Image,
			&m.CategoryID, &m.CategoryName, &m.Available, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetMenuItem looks up one catalog item by id.
func GetMenuItem(id uuid.UUID) (*models.MenuItem, error) {
	var m models.MenuItem
	err := database.QuickBill.QueryRow(`
		SELECT m.id, m.name, m.description, m.price, m.image,
		       m.category_id, c.name, m.is_available, m.created_at
		FROM menu_items m
		JOIN categories c ON c.id = m.category_id
		WHERE m.id = $1 AND m.archived_at IS NULL`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Image,
			&m.CategoryID, &m.CategoryName, &m.Available, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
