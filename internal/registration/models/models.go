package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
)

// Status is the admin-controlled moderation classification of a registration.
// Exactly one status holds at any time; transitions are admin-triggered.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a member of the status enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus parses a wire status value.
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeBadRequest, "invalid status: "+value)
	}
	return s, nil
}

// ParseModerationStatus parses a status that an admin may assign.
// Only approved and rejected are admin-assignable; pending is the creation state.
func ParseModerationStatus(value string) (Status, error) {
	s, err := ParseStatus(value)
	if err != nil {
		return "", err
	}
	if s == StatusPending {
		return "", dErrors.New(dErrors.CodeBadRequest, "status must be approved or rejected")
	}
	return s, nil
}

// YearOfStudy is the fixed academic-year enumeration offered by the intake form.
type YearOfStudy string

const (
	YearFirst     YearOfStudy = "1st Year (1st and 2nd Semester)"
	YearSecond    YearOfStudy = "2nd Year (3rd and 4th Semester)"
	YearThird     YearOfStudy = "3rd Year (5th and 6th Semester)"
	YearFourth    YearOfStudy = "4th Year (7th and 8th Semester)"
	YearPlusTwo   YearOfStudy = "+2/A Level"
	YearSecondary YearOfStudy = "Secondary Level"
	YearOther     YearOfStudy = "Other"
)

// Years lists the enumeration in form display order.
func Years() []YearOfStudy {
	return []YearOfStudy{
		YearFirst, YearSecond, YearThird, YearFourth,
		YearPlusTwo, YearSecondary, YearOther,
	}
}

// IsValid reports whether y is a member of the year-of-study enumeration.
func (y YearOfStudy) IsValid() bool {
	for _, known := range Years() {
		if y == known {
			return true
		}
	}
	return false
}

// Registration is one participant's submitted workshop application and its
// moderation status. The id is assigned at creation and never reused;
// RegistrationDate is set once and immutable thereafter.
type Registration struct {
	ID               uuid.UUID   `json:"id"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Institution      string      `json:"institution"`
	Major            string      `json:"major"`
	YearOfStudy      YearOfStudy `json:"yearOfStudy"`
	DataConsent      bool        `json:"dataConsent"`
	Status           Status      `json:"status"`
	RegistrationDate time.Time   `json:"registrationDate"`
}
