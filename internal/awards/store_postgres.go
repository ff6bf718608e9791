package awards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"claimflow/pkg/domain"
)

// PostgresStore reads the award table from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed award table.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, award Award) error {
	query := `
		INSERT INTO awards (school_id, academic_year, amount_pence)
		VALUES ($1, $2, $3)
		ON CONFLICT (school_id, academic_year) DO UPDATE SET amount_pence = EXCLUDED.amount_pence
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.UUID(award.SchoolID), award.Year.String(), award.Amount); err != nil {
		return fmt.Errorf("put award: %w", err)
	}
	return nil
}

func (s *PostgresStore) Amount(ctx context.Context, school domain.SchoolID, year domain.AcademicYear) (int64, error) {
	query := `SELECT amount_pence FROM awards WHERE school_id = $1 AND academic_year = $2`
	var amount int64
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(school), year.String()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup award: %w", err)
	}
	return amount, nil
}

func (s *PostgresStore) MaxAmount(ctx context.Context, year domain.AcademicYear) (int64, error) {
	query := `SELECT COALESCE(MAX(amount_pence), 0) FROM awards WHERE academic_year = $1`
	var amount int64
	if err := s.db.QueryRowContext(ctx, query, year.String()).Scan(&amount); err != nil {
		return 0, fmt.Errorf("max award: %w", err)
	}
	return amount, nil
}
