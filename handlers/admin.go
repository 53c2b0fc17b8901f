package handlers

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/ffoods/quickbill/middlewares"
	"github.com/ffoods/quickbill/models"
)

// AdminAuthCheck tells the admin UI whether the caller may enter.
// No session gives 401, a session without the admin role gives 403,
// an admin gets their identity back.
func AdminAuthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
		return
	}

	if !slices.Contains(claims.Roles, string(models.RoleAdmin)) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Forbidden: Admin access required"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Authorized",
		"user": map[string]interface{}{
			"id":    claims.UserID,
			"name":  claims.Name,
			"email": claims.Email,
			"role":  string(models.RoleAdmin),
		},
	})
}
