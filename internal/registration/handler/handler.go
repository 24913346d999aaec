package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpjson "registrar/internal/transport/http/json"
	"registrar/internal/transport/http/shared"

	"registrar/internal/registration/models"
	dErrors "registrar/pkg/domain-errors"
)

// Creator accepts intake submissions.
type Creator interface {
	Create(ctx context.Context, req models.CreateRequest) (models.Registration, error)
}

// Handler exposes the public intake endpoint.
type Handler struct {
	service Creator
	logger  *slog.Logger
}

func New(service Creator, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the intake route on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registrations", h.create)
}

// CreateResponse acknowledges a stored submission.
type CreateResponse struct {
	Message      string              `json:"message"`
	Registration models.Registration `json:"registration"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	reg, err := h.service.Create(r.Context(), req)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(r.Context(), "create registration failed", "error", err)
		}
		shared.WriteError(w, err)
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, CreateResponse{
		Message:      "registration received",
		Registration: reg,
	})
}
