package moderation

import (
	"strings"
	"time"

	"registrar/internal/registration/models"
)

var csvColumns = []string{
	"id", "firstName", "lastName", "email", "phone",
	"institution", "major", "yearOfStudy", "status", "registrationDate",
}

// ExportCSV renders the given registrations as CSV in the fixed column
// order, one row per record plus a header. Every field is double-quoted;
// dates are ISO-8601.
func ExportCSV(regs []models.Registration) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvColumns, ","))
	b.WriteByte('\n')

	for _, r := range regs {
		row := []string{
			r.ID.String(),
			r.FirstName,
			r.LastName,
			r.Email,
			r.Phone,
			r.Institution,
			r.Major,
			string(r.YearOfStudy),
			string(r.Status),
			r.RegistrationDate.UTC().Format(time.RFC3339),
		}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteCSV(field))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// quoteCSV wraps a field in double quotes, doubling any embedded quote.
func quoteCSV(field string) string {
	if strings.Contains(field, `"`) {
		field = strings.ReplaceAll(field, `"`, `""`)
	}
	return `"` + field + `"`
}

// ExportFilename derives the attachment name for a CSV download.
func ExportFilename(now time.Time) string {
	return "registrations-" + now.Format("2006-01-02") + ".csv"
}
