package moderation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/internal/registration/models"
)

type CSVSuite struct {
	suite.Suite
}

func TestCSVSuite(t *testing.T) {
	suite.Run(t, new(CSVSuite))
}

func (s *CSVSuite) TestExportCSV() {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	regs := []models.Registration{{
		ID:               id,
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@doe.com",
		Phone:            "1234567890",
		Institution:      "MIT",
		Major:            "CS",
		YearOfStudy:      models.YearFirst,
		Status:           models.StatusPending,
		RegistrationDate: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}}

	out := ExportCSV(regs)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	s.Require().Len(lines, 2)

	s.Equal("id,firstName,lastName,email,phone,institution,major,yearOfStudy,status,registrationDate", lines[0])
	s.Equal(`"11111111-2222-3333-4444-555555555555","Jane","Doe","jane@doe.com","1234567890","MIT","CS","1st Year (1st and 2nd Semester)","pending","2026-08-30T10:00:00Z"`, lines[1])
}

func (s *CSVSuite) TestExportCSV_EscapesEmbeddedQuotes() {
	regs := []models.Registration{{
		ID:          uuid.New(),
		FirstName:   `Jane "JJ"`,
		LastName:    "Doe",
		Institution: "MIT",
	}}

	out := ExportCSV(regs)
	s.Contains(out, `"Jane ""JJ"""`)
}

func (s *CSVSuite) TestExportCSV_EmptySetHasHeaderOnly() {
	out := ExportCSV(nil)
	s.Equal("id,firstName,lastName,email,phone,institution,major,yearOfStudy,status,registrationDate\n", out)
}

func (s *CSVSuite) TestExportFilename() {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	s.Equal("registrations-2026-08-30.csv", ExportFilename(now))
}
