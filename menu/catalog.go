package menu

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/models"
)

var ErrNotFound = errors.New("menu item not found")

// Loader fetches the full catalog from its backing store.
type Loader func() ([]models.MenuItem, error)

// Catalog is a read-through cache over the menu table. The menu changes
// rarely, so a short TTL keeps every request off the database without
// admin edits going stale for long.
type Catalog struct {
	mu        sync.RWMutex
	load      Loader
	ttl       time.Duration
	items     []models.MenuItem
	byID      map[uuid.UUID]models.MenuItem
	fetchedAt time.Time
}

func NewCatalog(load Loader, ttl time.Duration) *Catalog {
	return &Catalog{load: load, ttl: ttl}
}

// Items returns the catalog in stable display order.
func (c *Catalog) Items() ([]models.MenuItem, error) {
	if err := c.refresh(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

// Get looks up a single item by id.
func (c *Catalog) Get(id uuid.UUID) (models.MenuItem, error) {
	if err := c.refresh(); err != nil {
		return models.MenuItem{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byID[id]
	if !ok {
		return models.MenuItem{}, ErrNotFound
	}
	return item, nil
}

// Sections groups the catalog by category, preserving catalog order both
// across and within sections.
func (c *Catalog) Sections() ([]models.MenuSection, error) {
	items, err := c.Items()
	if err != nil {
		return nil, err
	}

	var sections []models.MenuSection
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.CategoryName]
		if !ok {
			i = len(sections)
			index[item.CategoryName] = i
			sections = append(sections, models.MenuSection{Category: item.CategoryName})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections, nil
}

// Invalidate forces the next read to hit the loader.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
}

func (c *Catalog) refresh() error {
	c.mu.RLock()
	fresh := !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return nil
	}

	items, err := c.load()
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]models.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	c.mu.Lock()
	c.items = items
	c.byID = byID
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	logrus.WithField("items", len(items)).Debug("menu catalog refreshed")
	return nil
}
