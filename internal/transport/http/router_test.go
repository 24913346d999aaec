package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/admin"
	adminhandler "registrar/internal/admin/handler"
	adminstore "registrar/internal/admin/store"
	moderationhandler "registrar/internal/moderation/handler"
	"registrar/internal/notify"
	notifyhandler "registrar/internal/notify/handler"
	"registrar/internal/platform/health"
	registrationhandler "registrar/internal/registration/handler"
	"registrar/internal/registration/service"
	"registrar/internal/registration/store"
)

type RouterSuite struct {
	suite.Suite
	handler http.Handler
	admin   *admin.Service
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)

	hash, err := admin.HashPassword("hunter2hunter2")
	s.Require().NoError(err)
	s.admin = admin.New(
		admin.Credentials{Username: "admin", PasswordHash: hash},
		"test-signing-key",
		time.Hour,
		adminstore.NewInMemory(),
		logger,
		nil,
	)

	svc := service.New(store.NewInMemory(), nil, logger, nil)
	sender := notify.NewLogSender(logger)

	s.handler = NewRouter(Handlers{
		Registration: registrationhandler.New(svc, logger),
		Moderation:   moderationhandler.New(svc, logger),
		Notify:       notifyhandler.New(sender, logger),
		Admin:        adminhandler.New(s.admin, logger),
		Health:       health.New("test"),
	}, s.admin, logger, nil)
}

func (s *RouterSuite) do(method, target, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) login() string {
	rec := s.do(http.MethodPost, "/admin/login", `{"username":"admin","password":"hunter2hunter2"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp adminhandler.LoginResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func (s *RouterSuite) TestPublicIntakeRoute() {
	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@doe.com","phone":"1234567890",` +
		`"institution":"MIT","major":"CS","yearOfStudy":"1st Year (1st and 2nd Semester)","dataConsent":true}`
	rec := s.do(http.MethodPost, "/registrations", body, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestModerationRoutesRequireSession() {
	rec := s.do(http.MethodGet, "/admin/registrations", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/admin/registrations", "", "forged-token")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestModerationRoutesWithSession() {
	token := s.login()

	rec := s.do(http.MethodGet, "/admin/registrations", "", token)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/admin/registrations/stats", "", token)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/admin/registrations/export", "", token)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("text/csv", rec.Header().Get("Content-Type"))
}

func (s *RouterSuite) TestLogoutRevokesAccess() {
	token := s.login()

	rec := s.do(http.MethodPost, "/admin/logout", "", token)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/admin/registrations", "", token)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestHealthRoutes() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health/live", "", "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health/ready", "", "").Code)
}

func (s *RouterSuite) TestNotifyRoute() {
	rec := s.do(http.MethodPost, "/notify", `{"email":"jane@doe.com","firstName":"Jane","lastName":"Doe"}`, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestContentTypeEnforced() {
	req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Equal(http.StatusUnsupportedMediaType, rec.Code)
}
