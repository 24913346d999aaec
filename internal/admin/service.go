// Package admin issues and validates authenticated admin sessions.
//
// A login exchanges credentials for a signed token bound to a server-side
// session. Validation checks both: the token signature/expiry and the
// session's continued existence, so logout revokes access immediately even
// for tokens that have not yet expired.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"registrar/internal/admin/store"
	"registrar/internal/platform/metrics"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// Credentials is the configured admin account. PasswordHash is a bcrypt
// hash; plaintext passwords never live in configuration.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Service authenticates the admin and manages session lifetime.
type Service struct {
	creds      Credentials
	signingKey []byte
	ttl        time.Duration
	sessions   store.Store
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New constructs the admin session service. Metrics are optional.
func New(creds Credentials, signingKey string, ttl time.Duration, sessions store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		creds:      creds,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		sessions:   sessions,
		logger:     logger,
		metrics:    m,
	}
}

// Login verifies the credentials and opens a session. The same unauthorized
// error is returned for a wrong username and a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (token string, err error) {
	if username != s.creds.Username || s.checkPassword(password) != nil {
		if s.metrics != nil {
			s.metrics.IncrementAdminLoginFailures()
		}
		s.logger.WarnContext(ctx, "admin login rejected", "username", username)
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := requestcontext.Now(ctx)
	session := store.Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: now,
	}
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "open admin session")
	}

	token, err = signToken(s.signingKey, username, session.ID, now, s.ttl)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "open admin session")
	}

	if s.metrics != nil {
		s.metrics.IncrementAdminLogins()
	}
	s.logger.InfoContext(ctx, "admin logged in", "username", username)
	return token, nil
}

// Logout revokes the session referenced by the token. A token that no longer
// parses is treated as already logged out.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	_, sessionID, err := parseToken(s.signingKey, tokenString)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "close admin session")
	}
	return nil
}

// Validate checks a bearer token against the live session set. It returns
// the admin username for valid tokens and an unauthorized error otherwise.
func (s *Service) Validate(ctx context.Context, tokenString string) (string, error) {
	username, sessionID, err := parseToken(s.signingKey, tokenString)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid session token")
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session revoked or expired")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "look up admin session")
	}
	if session.Username != username {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session does not match token")
	}
	return username, nil
}

func (s *Service) checkPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password))
}

// HashPassword produces a bcrypt hash suitable for the ADMIN_PASSWORD_HASH
// setting. Exposed for provisioning tooling and tests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
