package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"registrar/internal/notify"
	"registrar/internal/registration/models"
	httpjson "registrar/internal/transport/http/json"
	"registrar/internal/transport/http/shared"
	dErrors "registrar/pkg/domain-errors"
)

// Handler exposes the standalone confirmation email endpoint. Unlike the
// intake flow, this endpoint sends synchronously and reports delivery
// failures to the caller.
type Handler struct {
	sender notify.Sender
	logger *slog.Logger
}

func New(sender notify.Sender, logger *slog.Logger) *Handler {
	return &Handler{sender: sender, logger: logger}
}

// Register mounts the notify route on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/notify", h.send)
}

// SendResponse acknowledges a delivered confirmation email.
type SendResponse struct {
	Message string `json:"message"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	confirmation := notify.Confirmation{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.sender.Send(r.Context(), confirmation); err != nil {
		h.logger.ErrorContext(r.Context(), "confirmation email failed", "email", req.Email, "error", err)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotification, "failed to send confirmation email"))
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, SendResponse{Message: "confirmation email sent"})
}
