package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ffoods/quickbill/cart"
	"github.com/ffoods/quickbill/checkout"
	"github.com/ffoods/quickbill/menu"
	"github.com/ffoods/quickbill/middlewares"
	"github.com/ffoods/quickbill/models"
)

type testEnv struct {
	router  *mux.Router
	claims  *middlewares.Claims
	catalog []models.MenuItem
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	items := []models.MenuItem{
		{ID: uuid.New(), Name: "Classic Cheeseburger", CategoryName: "Burgers",
			Price: decimal.RequireFromString("199"), Available: true},
		{ID: uuid.New(), Name: "Margherita Pizza", CategoryName: "Pizza",
			Price: decimal.RequireFromString("499"), Available: true},
		{ID: uuid.New(), Name: "Spicy Chicken Wings", CategoryName: "Appetizers",
			Price: decimal.RequireFromString("150"), Available: false},
	}
	catalog := menu.NewCatalog(func() ([]models.MenuItem, error) { return items, nil }, time.Hour)
	carts := cart.NewStore()
	manager := checkout.NewManager(carts, nil)
	manager.SubmitFn = func(ctx context.Context) error { return nil }

	cartHandler := &CartHandler{Catalog: catalog, Carts: carts}
	checkoutHandler := &CheckoutHandler{Manager: manager}
	menuHandler := &MenuHandler{Catalog: catalog}

	router := mux.NewRouter()
	router.HandleFunc("/api/menu", menuHandler.List).Methods("GET")
	router.HandleFunc("/api/cart", cartHandler.Get).Methods("GET")
	router.HandleFunc("/api/cart/items", cartHandler.Add).Methods("POST")
	router.HandleFunc("/api/cart/items/{id}", cartHandler.UpdateQuantity).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{id}", cartHandler.Remove).Methods("DELETE")
	router.HandleFunc("/api/cart", cartHandler.Clear).Methods("DELETE")
	router.HandleFunc("/api/checkout", checkoutHandler.Begin).Methods("POST")
	router.HandleFunc("/api/checkout/customer", checkoutHandler.Customer).Methods("PUT")
	router.HandleFunc("/api/checkout/bill", checkoutHandler.Bill).Methods("GET")
	router.HandleFunc("/api/checkout/cancel", checkoutHandler.Cancel).Methods("POST")

	return &testEnv{
		router:  router,
		claims:  &middlewares.Claims{UserID: uuid.New(), Name: "Alice", Roles: []string{"user"}},
		catalog: items,
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req = middlewares.WithClaims(req, env.claims)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

type cartResponse struct {
	Entries     []cart.Entry `json:"entries"`
	TotalItems  int          `json:"total_items"`
	TotalAmount string       `json:"total_amount"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return resp
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	burger, pizza := env.catalog[0], env.catalog[1]

	rec := env.do(t, "POST", "/api/cart/items", map[string]interface{}{
		"item_id": burger.ID, "quantity": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add burger: status = %d: %s", rec.Code, rec.Body)
	}

	rec = env.do(t, "POST", "/api/cart/items", map[string]interface{}{
		"item_id": pizza.ID, "quantity": 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add pizza: status = %d", rec.Code)
	}

	resp := decodeCart(t, rec)
	if resp.TotalItems != 3 || resp.TotalAmount != "897.00" {
		t.Errorf("cart = %d items / %s, want 3 / 897.00", resp.TotalItems, resp.TotalAmount)
	}

	// quantity zero removes the line
	rec = env.do(t, "PATCH", "/api/cart/items/"+pizza.ID.String(), map[string]int{"quantity": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d", rec.Code)
	}
	resp = decodeCart(t, rec)
	if len(resp.Entries) != 1 || resp.TotalAmount != "398.00" {
		t.Errorf("after zero update: %d entries / %s", len(resp.Entries), resp.TotalAmount)
	}

	rec = env.do(t, "DELETE", "/api/cart/items/"+burger.ID.String(), nil)
	resp = decodeCart(t, rec)
	if resp.TotalItems != 0 {
		t.Errorf("after remove: %d items, want 0", resp.TotalItems)
	}
}

func TestAddUnavailableItem(t *testing.T) {
	env := newTestEnv(t)
	wings := env.catalog[2]

	rec := env.do(t, "POST", "/api/cart/items", map[string]interface{}{
		"item_id": wings.ID, "quantity": 1,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("add unavailable item: status = %d, want 409", rec.Code)
	}
}

func TestAddUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/cart/items", map[string]interface{}{
		"item_id": uuid.New(), "quantity": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("add unknown item: status = %d, want 404", rec.Code)
	}
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	burger, pizza := env.catalog[0], env.catalog[1]

	// empty cart cannot check out
	rec := env.do(t, "POST", "/api/checkout", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty checkout: status = %d, want 400", rec.Code)
	}

	env.do(t, "POST", "/api/cart/items", map[string]interface{}{"item_id": burger.ID, "quantity": 2})
	env.do(t, "POST", "/api/cart/items", map[string]interface{}{"item_id": pizza.ID, "quantity": 1})

	rec = env.do(t, "POST", "/api/checkout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout: status = %d: %s", rec.Code, rec.Body)
	}
	var begin struct {
		OrderID string `json:"order_id"`
		State   string `json:"state"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&begin); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if begin.State != string(checkout.StateCollecting) {
		t.Errorf("state = %s, want collecting", begin.State)
	}

	rec = env.do(t, "PUT", "/api/checkout/customer", map[string]string{
		"name": "Alice", "phone": "555-0101",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("customer: status = %d", rec.Code)
	}

	// the clipboard copy leaves the cart full
	rec = env.do(t, "GET", "/api/checkout/bill?format=clipboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clipboard bill: status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("clipboard content type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "Total: ₹968.76") {
		t.Errorf("clipboard bill missing grand total:\n%s", rec.Body)
	}
	if resp := decodeCart(t, env.do(t, "GET", "/api/cart", nil)); resp.TotalItems != 3 {
		t.Errorf("cart after clipboard copy = %d items, want 3", resp.TotalItems)
	}

	// the download completes the checkout and clears the cart
	rec = env.do(t, "GET", "/api/checkout/bill?format=download", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download bill: status = %d", rec.Code)
	}
	wantDisp := fmt.Sprintf("attachment; filename=%q", "Bill-"+begin.OrderID+".html")
	if got := rec.Header().Get("Content-Disposition"); got != wantDisp {
		t.Errorf("content disposition = %q, want %q", got, wantDisp)
	}
	if resp := decodeCart(t, env.do(t, "GET", "/api/cart", nil)); resp.TotalItems != 0 {
		t.Errorf("cart after download = %d items, want 0", resp.TotalItems)
	}
}

func TestCheckoutCancelKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	burger := env.catalog[0]

	env.do(t, "POST", "/api/cart/items", map[string]interface{}{"item_id": burger.ID, "quantity": 1})
	if rec := env.do(t, "POST", "/api/checkout", nil); rec.Code != http.StatusOK {
		t.Fatalf("checkout: status = %d", rec.Code)
	}

	if rec := env.do(t, "POST", "/api/checkout/cancel", nil); rec.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d", rec.Code)
	}
	if resp := decodeCart(t, env.do(t, "GET", "/api/cart", nil)); resp.TotalItems != 1 {
		t.Errorf("cart after cancel = %d items, want 1", resp.TotalItems)
	}

	// rendering after cancel is a conflict, not a crash
	if rec := env.do(t, "GET", "/api/checkout/bill?format=print", nil); rec.Code != http.StatusConflict {
		t.Errorf("bill after cancel: status = %d, want 409", rec.Code)
	}
}

func TestBillRequiresKnownFormat(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.do(t, "GET", "/api/checkout/bill?format=fax", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMenuGroupedByCategory(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, "GET", "/api/menu", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("menu: status = %d", rec.Code)
	}

	var resp struct {
		Sections []models.MenuSection `json:"sections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(resp.Sections))
	}
	if resp.Sections[0].Category != "Burgers" {
		t.Errorf("first section = %s, want Burgers", resp.Sections[0].Category)
	}
}
