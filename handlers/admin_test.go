package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/ffoods/quickbill/middlewares"
)

func TestAdminAuthCheckNoSession(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/auth", nil)

	AdminAuthCheck(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Unauthorized" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestAdminAuthCheckWrongRole(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/auth", nil)
	req = middlewares.WithClaims(req, &middlewares.Claims{
		UserID: uuid.New(),
		Roles:  []string{"user"},
	})

	AdminAuthCheck(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Forbidden: Admin access required" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestAdminAuthCheckAdmin(t *testing.T) {
	userID := uuid.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/auth", nil)
	req = middlewares.WithClaims(req, &middlewares.Claims{
		UserID: userID,
		Name:   "Admin User",
		Email:  "admin@example.com",
		Roles:  []string{"admin"},
	})

	AdminAuthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID    uuid.UUID `json:"id"`
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Role  string    `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Authorized" {
		t.Errorf("message = %q", body.Message)
	}
	if body.User.ID != userID || body.User.Name != "Admin User" ||
		body.User.Email != "admin@example.com" || body.User.Role != "admin" {
		t.Errorf("user = %+v", body.User)
	}
}
