package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"registrar/internal/registration/models"
	"registrar/pkg/platform/sentinel"
)

// PostgresStore persists registrations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, reg *models.Registration) error {
	if reg == nil {
		return fmt.Errorf("registration is required")
	}
	query := `
		INSERT INTO registrations
			(id, first_name, last_name, email, phone, institution, major,
			 year_of_study, data_consent, status, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		reg.ID,
		reg.FirstName,
		reg.LastName,
		reg.Email,
		reg.Phone,
		reg.Institution,
		reg.Major,
		string(reg.YearOfStudy),
		reg.DataConsent,
		string(reg.Status),
		reg.RegistrationDate,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) SelectAll(ctx context.Context) ([]models.Registration, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, institution, major,
		       year_of_study, data_consent, status, registration_date
		FROM registrations
		ORDER BY registration_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}
	defer rows.Close()

	var all []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		all = append(all, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return all, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	query := `UPDATE registrations SET status = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registrations WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanRegistration(rows *sql.Rows) (models.Registration, error) {
	var (
		reg    models.Registration
		year   string
		status string
	)
	err := rows.Scan(
		&reg.ID,
		&reg.FirstName,
		&reg.LastName,
		&reg.Email,
		&reg.Phone,
		&reg.Institution,
		&reg.Major,
		&year,
		&reg.DataConsent,
		&status,
		&reg.RegistrationDate,
	)
	if err != nil {
		return models.Registration{}, err
	}
	reg.YearOfStudy = models.YearOfStudy(year)
	reg.Status = models.Status(status)
	return reg, nil
}
