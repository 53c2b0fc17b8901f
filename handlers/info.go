package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ffoods/quickbill/billing"
	"github.com/ffoods/quickbill/middlewares"
)

// Home serves the landing page content: restaurant identity and the
// feature blurbs shown on the marketing page.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"name":    billing.MerchantName,
		"tagline": "A modern ordering system that makes your dining experience seamless and efficient.",
		"address": billing.MerchantAddress,
		"phone":   billing.MerchantPhone,
		"support": billing.SupportEmail,
		"features": []map[string]string{
			{"title": "Fresh Food", "description": "All meals are made with high-quality, fresh ingredients for the best taste."},
			{"title": "Quick Service", "description": "Fast ordering and billing so you spend less time waiting."},
			{"title": "Easy Payment", "description": "Generate and share an itemized bill in one click."},
			{"title": "Find Us", "description": billing.MerchantAddress},
		},
	})
}

type navItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Nav serves the sidebar navigation shell. The account group and user
// block only appear for an authenticated session.
func Nav(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"main": []navItem{
			{Title: "Home", URL: "/"},
			{Title: "Menu", URL: "/menu-page"},
		},
	}

	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		resp["account"] = []navItem{
			{Title: "Profile", URL: "/profile"},
			{Title: "Settings", URL: "/settings"},
			{Title: "About", URL: "/about"},
		}
		resp["user"] = map[string]interface{}{
			"id":    claims.UserID,
			"roles": claims.Roles,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
