package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"registrar/internal/registration/models"
	"registrar/internal/registration/service"
	"registrar/internal/registration/store"
	"registrar/internal/transport/http/shared"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
	store  *store.InMemoryStore
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.store = store.NewInMemory()
	svc := service.New(s.store, nil, logger, nil)

	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
}

func (s *HandlerSuite) post(body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]any {
	return map[string]any{
		"firstName":   "Jane",
		"lastName":    "Doe",
		"email":       "jane@doe.com",
		"phone":       "1234567890",
		"institution": "Tribhuvan University",
		"major":       "Computer Science",
		"yearOfStudy": string(models.YearFirst),
		"dataConsent": true,
	}
}

func (s *HandlerSuite) TestCreate() {
	rec := s.post(validBody())
	s.Require().Equal(http.StatusOK, rec.Code)

	var resp CreateResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("registration received", resp.Message)
	s.Equal("pending", string(resp.Registration.Status))
	s.Equal("TRIBHUVAN UNIVERSITY", resp.Registration.Institution)
	s.NotEmpty(resp.Registration.ID)
	s.WithinDuration(time.Now(), resp.Registration.RegistrationDate, time.Minute)

	all, err := s.store.SelectAll(context.Background())
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *HandlerSuite) TestCreate_ValidationFailure() {
	body := validBody()
	body["dataConsent"] = false
	body["email"] = "not-an-email"

	rec := s.post(body)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("validation_failed", resp.Error)
	s.Equal("you must agree to the data collection policy", resp.Fields["dataConsent"])
	s.Equal("please enter a valid email address", resp.Fields["email"])

	all, err := s.store.SelectAll(context.Background())
	s.Require().NoError(err)
	s.Empty(all, "rejected submissions are not stored")
}

func (s *HandlerSuite) TestCreate_MalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("bad_request", resp.Error)
}
