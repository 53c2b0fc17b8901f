package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ffoods/quickbill/cart"
	"github.com/ffoods/quickbill/menu"
	"github.com/ffoods/quickbill/middlewares"
)

type CartHandler struct {
	Catalog *menu.Catalog
	Carts   *cart.Store
}

// Get returns the session's cart with its running totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	h.writeCart(w, h.Carts.Get(claims.UserID))
}

// Add puts a catalog item into the session's cart. Unavailable items are
// rejected; quantities below one are clamped to one.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		ItemID   uuid.UUID `json:"item_id"`
		Quantity int       `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	item, err := h.Catalog.Get(req.ItemID)
	if errors.Is(err, menu.ErrNotFound) {
		http.Error(w, "menu item not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "failed to load menu", http.StatusInternalServerError)
		return
	}

	c := h.Carts.Get(claims.UserID)
	if err := c.Add(item, req.Quantity); err != nil {
		http.Error(w, "item is out of stock", http.StatusConflict)
		return
	}
	h.writeCart(w, c)
}

// UpdateQuantity sets the quantity for one cart entry; zero removes it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	type request struct {
		Quantity int `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	c := h.Carts.Get(claims.UserID)
	if err := c.UpdateQuantity(itemID, req.Quantity); err != nil {
		http.Error(w, "item not in cart", http.StatusNotFound)
		return
	}
	h.writeCart(w, c)
}

// Remove deletes one entry; removing an absent entry is fine.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	itemID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	c := h.Carts.Get(claims.UserID)
	c.Remove(itemID)
	h.writeCart(w, c)
}

// Clear empties the cart on explicit request.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	c := h.Carts.Get(claims.UserID)
	c.Clear()
	h.writeCart(w, c)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, c *cart.Cart) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"entries":      c.Entries(),
		"total_items":  c.TotalItemCount(),
		"total_amount": c.TotalAmount().StringFixed(2),
	})
}
