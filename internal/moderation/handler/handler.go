package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"registrar/internal/moderation"
	"registrar/internal/registration/models"
	httpjson "registrar/internal/transport/http/json"
	"registrar/internal/transport/http/shared"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/requestcontext"
)

// Service is the registration surface the moderation endpoints consume.
type Service interface {
	List(ctx context.Context) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler exposes the admin review endpoints: listing with search, aggregate
// statistics, CSV export, moderation decisions and removal.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the moderation routes on the given (admin-gated) router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registrations", h.list)
	r.Get("/registrations/stats", h.stats)
	r.Get("/registrations/export", h.export)
	r.Patch("/registrations/{id}/status", h.updateStatus)
	r.Delete("/registrations/{id}", h.delete)
}

// ListResponse carries the (possibly filtered) registration set.
type ListResponse struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int                   `json:"total"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	regs, ok := h.visible(w, r)
	if !ok {
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, ListResponse{
		Registrations: regs,
		Total:         len(regs),
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	regs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list registrations failed", "error", err)
		shared.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, moderation.Compute(regs, requestcontext.Now(r.Context())))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	regs, ok := h.visible(w, r)
	if !ok {
		return
	}

	now := requestcontext.Now(r.Context())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+moderation.ExportFilename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(moderation.ExportCSV(regs)))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid registration id"))
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid registration id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"message": "registration deleted"})
}

// visible loads the registration set and applies the q / status query
// parameters shared by list and export.
func (h *Handler) visible(w http.ResponseWriter, r *http.Request) ([]models.Registration, bool) {
	regs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list registrations failed", "error", err)
		shared.WriteError(w, err)
		return nil, false
	}

	var status models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err = models.ParseStatus(raw)
		if err != nil {
			shared.WriteError(w, err)
			return nil, false
		}
	}

	return moderation.Filter(regs, r.URL.Query().Get("q"), status), true
}
