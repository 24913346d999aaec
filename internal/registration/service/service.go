package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"registrar/internal/notify"
	"registrar/internal/platform/metrics"
	"registrar/internal/registration/models"
	"registrar/internal/registration/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// Enqueuer schedules a confirmation email without blocking the caller.
type Enqueuer interface {
	Enqueue(c notify.Confirmation)
}

// Service owns the registration lifecycle: intake, listing, moderation
// decisions and removal.
type Service struct {
	store    store.Store
	notifier Enqueuer
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New constructs a registration service. The notifier and metrics are
// optional; a nil notifier disables confirmation emails.
func New(st store.Store, notifier Enqueuer, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:    st,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
	}
}

// Create validates and persists an intake submission, then schedules a
// best-effort confirmation email. The returned registration carries the
// assigned id, pending status and server-side registration date.
func (s *Service) Create(ctx context.Context, req models.CreateRequest) (models.Registration, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailures()
		}
		return models.Registration{}, err
	}

	reg := req.ToRegistration(requestcontext.Now(ctx))
	if err := s.store.Insert(ctx, &reg); err != nil {
		return models.Registration{}, dErrors.Wrap(err, dErrors.CodeInternal, "create registration")
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrationsCreated()
	}
	s.logger.InfoContext(ctx, "registration created",
		"id", reg.ID,
		"institution", reg.Institution,
	)

	// Email delivery must never fail the submission.
	if s.notifier != nil {
		s.notifier.Enqueue(notify.Confirmation{
			Email:     reg.Email,
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
		})
	}

	return reg, nil
}

// List returns every registration, newest first.
func (s *Service) List(ctx context.Context) ([]models.Registration, error) {
	all, err := s.store.SelectAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list registrations")
	}
	return all, nil
}

// UpdateStatus applies a moderation decision. Only approved and rejected are
// admin-assignable; applying the current status again is a no-op success.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) error {
	status, err := models.ParseModerationStatus(rawStatus)
	if err != nil {
		return err
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "update registration status")
	}

	if s.metrics != nil {
		s.metrics.IncrementStatusTransitions(string(status))
	}
	s.logger.InfoContext(ctx, "registration status updated", "id", id, "status", status)
	return nil
}

// Delete permanently removes a registration.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "delete registration")
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrationsDeleted()
	}
	s.logger.InfoContext(ctx, "registration deleted", "id", id)
	return nil
}
