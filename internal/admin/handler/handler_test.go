package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"registrar/internal/admin"
	"registrar/internal/admin/store"
)

type AdminHandlerSuite struct {
	suite.Suite
	router  chi.Router
	service *admin.Service
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	hash, err := admin.HashPassword("hunter2hunter2")
	s.Require().NoError(err)

	logger := slog.New(slog.DiscardHandler)
	s.service = admin.New(
		admin.Credentials{Username: "admin", PasswordHash: hash},
		"test-signing-key",
		time.Hour,
		store.NewInMemory(),
		logger,
		nil,
	)

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *AdminHandlerSuite) post(target, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(body)))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AdminHandlerSuite) TestLogin() {
	rec := s.post("/login", `{"username":"admin","password":"hunter2hunter2"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"token"`)
}

func (s *AdminHandlerSuite) TestLogin_BadCredentials() {
	rec := s.post("/login", `{"username":"admin","password":"wrong"}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AdminHandlerSuite) TestLogin_MissingFields() {
	rec := s.post("/login", `{"username":"admin"}`, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AdminHandlerSuite) TestLogout() {
	token, err := s.service.Login(s.T().Context(), "admin", "hunter2hunter2")
	s.Require().NoError(err)

	rec := s.post("/logout", "", token)
	s.Require().Equal(http.StatusOK, rec.Code)

	_, err = s.service.Validate(s.T().Context(), token)
	s.Error(err)
}

func (s *AdminHandlerSuite) TestLogout_MissingToken() {
	rec := s.post("/logout", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
