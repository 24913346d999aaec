package models

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
)

// CreateRequest is the intake submission body. Field names follow the wire
// (camelCase) convention; validation messages mirror the intake form so the
// client can show them inline next to the offending field.
type CreateRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=2"`
	LastName    string `json:"lastName" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10"`
	Institution string `json:"institution" validate:"required,min=2"`
	Major       string `json:"major" validate:"required,min=2"`
	YearOfStudy string `json:"yearOfStudy" validate:"required,yearofstudy"`
	DataConsent bool   `json:"dataConsent" validate:"eq=true"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the wire field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("yearofstudy", func(fl validator.FieldLevel) bool {
		return YearOfStudy(fl.Field().String()).IsValid()
	})
	return v
}

// Normalize trims surrounding whitespace from all string fields.
// Upper-casing of institution/major is a service concern, not a request one.
func (r *CreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Institution = strings.TrimSpace(r.Institution)
	r.Major = strings.TrimSpace(r.Major)
	r.YearOfStudy = strings.TrimSpace(r.YearOfStudy)
}

// Validate checks every field constraint and returns a single validation error
// carrying per-field messages. A record is never created without data consent.
func (r *CreateRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "validate registration")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return dErrors.NewValidation("invalid registration", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "firstName":
		return "first name must be at least 2 characters"
	case "lastName":
		return "last name must be at least 2 characters"
	case "email":
		return "please enter a valid email address"
	case "phone":
		return "please enter a valid phone number"
	case "institution":
		return "institution name is required"
	case "major":
		return "field of study is required"
	case "yearOfStudy":
		return "please select your year of study"
	case "dataConsent":
		return "you must agree to the data collection policy"
	}
	return "invalid value"
}

// ToRegistration builds the persistent record from a validated request.
// Institution and major are normalized to upper case at intake; the status is
// always pending and the registration date is pinned to the given time.
func (r *CreateRequest) ToRegistration(now time.Time) Registration {
	return Registration{
		ID:               uuid.New(),
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		Institution:      strings.ToUpper(r.Institution),
		Major:            strings.ToUpper(r.Major),
		YearOfStudy:      YearOfStudy(r.YearOfStudy),
		DataConsent:      r.DataConsent,
		Status:           StatusPending,
		RegistrationDate: now,
	}
}

// UpdateStatusRequest is the moderation decision body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// NotifyRequest asks for a confirmation email independent of create.
type NotifyRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Validate checks the notify request and reports missing fields.
func (r *NotifyRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "validate notify request")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = "required"
		if fe.Field() == "email" && fe.Tag() == "email" {
			fields[fe.Field()] = "please enter a valid email address"
		}
	}
	return dErrors.NewValidation("missing required fields", fields)
}
