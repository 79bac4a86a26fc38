package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/storefront-be/internal/auth"
	"github.com/isdelr/storefront-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new account registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Register(payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			log.Warn().Str("email", payload.Email).Msg("Registration with taken email")
			http.Error(w, "Email already registered", http.StatusUnauthorized)
		case errors.Is(err, services.ErrInvalidInput):
			http.Error(w, "Invalid email or password", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register account")
			http.Error(w, "Failed to register", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetMe resolves the authenticated subject from the verified token claims to
// the current account state.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	account, err := h.service.Validate(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("account_id", claims.UserID).Msg("Failed to resolve account from token")
		http.Error(w, "Failed to resolve account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}
