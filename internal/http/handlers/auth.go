package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/loanbook-be/internal/auth"
	"github.com/hongminglow/loanbook-be/internal/config"
	"github.com/hongminglow/loanbook-be/internal/http/respond"
	"github.com/hongminglow/loanbook-be/internal/models/dto"
	"github.com/hongminglow/loanbook-be/internal/storage"
)

// AuthHandler owns the register/login/logout/me endpoints.
type AuthHandler struct {
	auth  *auth.Authenticator
	guard *auth.SessionGuard
	cfg   *config.Config
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authenticator *auth.Authenticator, guard *auth.SessionGuard, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: authenticator, guard: guard, cfg: cfg}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /auth/me", h.handleMe)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := h.auth.Register(r.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "User already exists")
		default:
			slog.Error("register failed", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{Success: true, User: identity})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)

	token, err := h.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, auth.ErrNoSigningSecret):
			respond.Error(w, http.StatusInternalServerError, "Server misconfiguration: signing secret is missing")
		default:
			slog.Error("login failed", "email", email, "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.SessionTTL.Seconds())))
	respond.JSON(w, http.StatusOK, dto.AuthResponse{Success: true, User: auth.Identity{Email: email}})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// No server-side revocation exists; the expiring cookie is the whole
	// logout.
	http.SetCookie(w, h.sessionCookie("", -1))
	respond.Success(w, http.StatusOK)
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.FromRequest(r)
	if !ok {
		respond.JSON(w, http.StatusOK, dto.MeResponse{Authenticated: false})
		return
	}
	respond.JSON(w, http.StatusOK, dto.MeResponse{Authenticated: true, User: &identity})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
