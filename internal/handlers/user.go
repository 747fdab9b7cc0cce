// internal/handlers/user.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/eranhirsch/nothanks/internal/auth"
	"github.com/eranhirsch/nothanks/internal/database"
	"github.com/eranhirsch/nothanks/internal/models"
)

const sessionCookie = "session"

// EnsureEphemeralUser returns the user behind the request's session token,
// minting a guest user and a fresh session when there is none. Guests let
// visitors watch and drive a table without registering.
func EnsureEphemeralUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if token := sessionToken(r); token != "" {
		if id, err := auth.VerifyToken(token); err == nil {
			return id, nil
		}
		// Fall through and mint a new guest on an expired or bogus token.
	}

	var userID uuid.UUID
	if database.DB != nil {
		u, err := database.CreateEphemeralUser(r.Context(), "guest")
		if err != nil {
			return uuid.Nil, fmt.Errorf("create guest user: %w", err)
		}
		userID = u.ID
	} else {
		// No user database configured: sessions are still issued so seat
		// identity is stable across reconnects, just not durable.
		userID, _ = uuid.NewRandom()
	}

	token, err := auth.CreateToken(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("issue session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return userID, nil
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// CreateUserHandler registers a persistent account:
// POST {"email", "password", "username"}.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if database.DB == nil {
		http.Error(w, "user accounts unavailable", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		http.Error(w, "email, password and username are required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	u := &models.User{
		Email:    req.Email,
		Password: hash,
		Username: req.Username,
	}
	if err := database.CreateUser(r.Context(), u); err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	u.Password = ""
	writeJSON(w, http.StatusCreated, u)
}

// LoginHandler verifies credentials and issues a session cookie:
// POST {"email", "password"}.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if database.DB == nil {
		http.Error(w, "user accounts unavailable", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	u, err := database.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	ok, err := auth.VerifyPassword(req.Password, u.Password)
	if err != nil || !ok {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.CreateToken(u.ID)
	if err != nil {
		http.Error(w, "failed to issue session", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	u.Password = ""
	writeJSON(w, http.StatusOK, u)
}
