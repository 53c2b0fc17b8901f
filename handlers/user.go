package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ffoods/quickbill/config"
	"github.com/ffoods/quickbill/database"
	"github.com/ffoods/quickbill/database/dbhelper"
	"github.com/ffoods/quickbill/middlewares"
	"github.com/ffoods/quickbill/models"
	"github.com/ffoods/quickbill/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "name, email and password are required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		http.Error(w, "failed to check user existence", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "user already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	var userID uuid.UUID
	var accToken, refToken string
	txErr := database.Tx(func(tx *sql.Tx) error {
		userID, err = dbhelper.CreateUser(tx, req.Name, req.Email, req.Phone, hashedPassword)
		if err != nil {
			logrus.Printf("failed to create user, error: %v", err)
			return err
		}

		if err = dbhelper.AssignRole(tx, userID, models.RoleUser); err != nil {
			logrus.Printf("failed to assign role to the user, error: %v", err)
			return err
		}

		accToken, refToken, err = utils.GenerateTokens(userID, req.Name, req.Email, []string{string(models.RoleUser)})
		if err != nil {
			logrus.Printf("failed to generate token, error: %v", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, refToken, time.Now().Add(7*24*time.Hour))
	resp := map[string]interface{}{
		"user_id":      userID,
		"email":        req.Email,
		"name":         req.Name,
		"access_token": accToken,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	user, err := dbhelper.GetUserByPassword(req.Email, req.Password)
	if err != nil {
		// wrong password and unknown email are indistinguishable on purpose
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	roles, err := dbhelper.GetUserRoles(user.ID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}
	if len(roles) == 0 {
		http.Error(w, "no roles assigned", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Name, user.Email, roles)
	if err != nil {
		http.Error(w, "failed to generate tokens", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, refreshToken, time.Now().Add(7*24*time.Hour))
	resp := map[string]interface{}{
		"user_id":      user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"access_token": accessToken,
		"roles":        roles,
		"message":      "Successfully logged in",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "refresh token missing", http.StatusUnauthorized)
		return
	}

	claims := &middlewares.Claims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	newAccessToken, newRefreshToken, err := utils.GenerateTokens(claims.UserID, claims.Name, claims.Email, claims.Roles)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, newRefreshToken, time.Now().Add(7*24*time.Hour))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": newAccessToken,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Successfully logged out",
	})
}

func setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  expires,
	})
}
