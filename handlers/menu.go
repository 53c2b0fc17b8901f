package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ffoods/quickbill/menu"
)

type MenuHandler struct {
	Catalog *menu.Catalog
}

// List serves the whole catalog grouped by category.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Catalog.Sections()
	if err != nil {
		http.Error(w, "failed to load menu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"sections": sections,
	})
}

// Refresh drops the catalog cache so menu edits show up immediately.
func (h *MenuHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Catalog.Invalidate()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "menu cache invalidated"})
}
