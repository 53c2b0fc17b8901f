package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ffoods/quickbill/billing"
	"github.com/ffoods/quickbill/checkout"
	"github.com/ffoods/quickbill/middlewares"
)

type CheckoutHandler struct {
	Manager *checkout.Manager
}

// Begin submits the order and opens the customer info step.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	s, err := h.Manager.Begin(r.Context(), claims.UserID)
	if errors.Is(err, billing.ErrEmptyCart) {
		http.Error(w, "cart is empty", http.StatusBadRequest)
		return
	} else if err != nil {
		http.Error(w, "failed to start checkout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order_id": s.OrderID(),
		"state":    s.State(),
	})
}

// Customer records the name and phone for the bill; both are optional.
func (h *CheckoutHandler) Customer(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var info billing.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Manager.SetCustomer(claims.UserID, info); err != nil {
		writeCheckoutError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "customer info saved"})
}

// Bill renders and delivers the bill in the requested format. The print and
// download formats complete the checkout and clear the cart; the clipboard
// format leaves the session open.
func (h *CheckoutHandler) Bill(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var enc billing.Encoding
	switch r.URL.Query().Get("format") {
	case "print":
		enc = billing.EncodingPrint
	case "download":
		enc = billing.EncodingDownload
	case "clipboard", "text":
		enc = billing.EncodingClipboard
	default:
		http.Error(w, "format must be print, download or clipboard", http.StatusBadRequest)
		return
	}

	s, doc, err := h.Manager.Export(r.Context(), claims.UserID, enc)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}

	switch enc {
	case billing.EncodingClipboard:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	case billing.EncodingDownload:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", s.Snapshot().Filename()))
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.Write(doc)
}

// Cancel dismisses the customer info step. The cart is kept so the order
// can be picked up again or emptied explicitly.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Manager.Cancel(claims.UserID); err != nil {
		writeCheckoutError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "checkout cancelled, cart kept"})
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrNoSession):
		http.Error(w, "no checkout in progress", http.StatusNotFound)
	case errors.Is(err, checkout.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, billing.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusBadRequest)
	case errors.Is(err, checkout.ErrExportFailed):
		// non-fatal: cart and session are intact, the client may retry
		http.Error(w, "bill export failed, please retry", http.StatusBadGateway)
	default:
		http.Error(w, "checkout error", http.StatusInternalServerError)
	}
}
