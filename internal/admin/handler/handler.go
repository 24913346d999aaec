package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	httpjson "registrar/internal/transport/http/json"
	"registrar/internal/transport/http/shared"
	dErrors "registrar/pkg/domain-errors"
)

// Service is the session surface the auth endpoints consume.
type Service interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Logout(ctx context.Context, tokenString string) error
}

// Handler exposes admin login and logout.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the auth routes on the given (admin-scoped) router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "username and password are required"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing session token"))
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.logger.ErrorContext(r.Context(), "admin logout failed", "error", err)
		shared.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
