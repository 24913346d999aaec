package admin

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/admin/store"
	dErrors "registrar/pkg/domain-errors"
)

const (
	testSigningKey = "test-signing-key"
	testPassword   = "correct horse battery staple"
)

type AdminServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	hash, err := HashPassword(testPassword)
	s.Require().NoError(err)

	s.service = New(
		Credentials{Username: "admin", PasswordHash: hash},
		testSigningKey,
		time.Hour,
		store.NewInMemory(),
		slog.New(slog.DiscardHandler),
		nil,
	)
	s.ctx = context.Background()
}

func (s *AdminServiceSuite) TestLoginAndValidate() {
	token, err := s.service.Login(s.ctx, "admin", testPassword)
	s.Require().NoError(err)
	s.NotEmpty(token)

	username, err := s.service.Validate(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("admin", username)
}

func (s *AdminServiceSuite) TestLogin_WrongPassword() {
	_, err := s.service.Login(s.ctx, "admin", "wrong")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestLogin_UnknownUsername() {
	_, err := s.service.Login(s.ctx, "root", testPassword)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestValidate_RejectsGarbageToken() {
	_, err := s.service.Validate(s.ctx, "not-a-token")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestValidate_RejectsForeignSignature() {
	foreign := New(
		s.service.creds,
		"different-signing-key",
		time.Hour,
		store.NewInMemory(),
		slog.New(slog.DiscardHandler),
		nil,
	)
	token, err := foreign.Login(s.ctx, "admin", testPassword)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, token)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AdminServiceSuite) TestLogout_RevokesSession() {
	token, err := s.service.Login(s.ctx, "admin", testPassword)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.ctx, token))

	_, err = s.service.Validate(s.ctx, token)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized), "a valid signature is not enough once the session is gone")
}

func (s *AdminServiceSuite) TestLogout_ToleratesInvalidToken() {
	s.NoError(s.service.Logout(s.ctx, "not-a-token"))
}

func (s *AdminServiceSuite) TestSessionsAreIndependent() {
	first, err := s.service.Login(s.ctx, "admin", testPassword)
	s.Require().NoError(err)
	second, err := s.service.Login(s.ctx, "admin", testPassword)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.ctx, first))

	_, err = s.service.Validate(s.ctx, second)
	s.NoError(err, "logging out one session leaves others live")
}
