package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"claimflow/internal/claim/models"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
	"claimflow/pkg/sentinel"
)

// PostgresStore persists claims in PostgreSQL. Eligibility answers are
// stored as JSONB and revalidated against the policy schema on load.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed claim store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, claim *models.Claim, elig *models.EligibilityRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create claim: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO claims (
			id, policy, first_name, surname, date_of_birth,
			national_insurance_number, teacher_reference_number, email,
			bank_account_name, bank_sort_code, bank_account_number, bank_roll_number,
			qualifications_verified, version, submitted_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	_, err = tx.ExecContext(ctx, query,
		uuid.UUID(claim.ID), string(claim.Policy),
		claim.Personal.FirstName, claim.Personal.Surname, claim.Personal.DateOfBirth,
		claim.Personal.NationalInsuranceNo, claim.Personal.TeacherReferenceNumber, claim.Personal.Email,
		claim.Bank.AccountName, claim.Bank.SortCode, claim.Bank.AccountNumber, claim.Bank.RollNumber,
		claim.QualificationsVerified, claim.Version, claim.SubmittedAt, claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}

	if err := upsertEligibility(ctx, tx, elig); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create claim: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error) {
	query := `
		SELECT c.policy, c.first_name, c.surname, c.date_of_birth,
		       c.national_insurance_number, c.teacher_reference_number, c.email,
		       c.bank_account_name, c.bank_sort_code, c.bank_account_number, c.bank_roll_number,
		       c.qualifications_verified, c.version, c.submitted_at, c.created_at, c.updated_at,
		       e.answers, e.status, e.reason, e.award_amount_pence
		FROM claims c
		JOIN eligibilities e ON e.claim_id = c.id
		WHERE c.id = $1
	`
	var (
		claim       models.Claim
		policy      string
		submittedAt sql.NullTime
		answersJSON []byte
		status      string
		reason      sql.NullString
		award       int64
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(id)).Scan(
		&policy, &claim.Personal.FirstName, &claim.Personal.Surname, &claim.Personal.DateOfBirth,
		&claim.Personal.NationalInsuranceNo, &claim.Personal.TeacherReferenceNumber, &claim.Personal.Email,
		&claim.Bank.AccountName, &claim.Bank.SortCode, &claim.Bank.AccountNumber, &claim.Bank.RollNumber,
		&claim.QualificationsVerified, &claim.Version, &submittedAt, &claim.CreatedAt, &claim.UpdatedAt,
		&answersJSON, &status, &reason, &award,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("get claim: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get claim: %w", err)
	}
	claim.ID = id
	claim.Policy = domain.Policy(policy)
	if submittedAt.Valid {
		t := submittedAt.Time
		claim.SubmittedAt = &t
	}

	elig := &models.EligibilityRecord{
		ClaimID:     id,
		Policy:      claim.Policy,
		Status:      eligibility.Status(status),
		AwardAmount: award,
	}
	if reason.Valid {
		elig.Reason = eligibility.ReasonCode(reason.String)
	}
	if err := json.Unmarshal(answersJSON, &elig.Answers); err != nil {
		return nil, nil, fmt.Errorf("decode eligibility answers: %w", err)
	}
	return &claim, elig, nil
}

// Update serializes writers per claim via the version column: the UPDATE
// only matches when the stored version equals the caller's expectation.
func (s *PostgresStore) Update(ctx context.Context, claim *models.Claim, elig *models.EligibilityRecord, expectedVersion int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update claim: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE claims SET
			first_name = $1, surname = $2, date_of_birth = $3,
			national_insurance_number = $4, teacher_reference_number = $5, email = $6,
			bank_account_name = $7, bank_sort_code = $8, bank_account_number = $9, bank_roll_number = $10,
			qualifications_verified = $11, version = version + 1, submitted_at = $12, updated_at = $13
		WHERE id = $14 AND version = $15
	`
	res, err := tx.ExecContext(ctx, query,
		claim.Personal.FirstName, claim.Personal.Surname, claim.Personal.DateOfBirth,
		claim.Personal.NationalInsuranceNo, claim.Personal.TeacherReferenceNumber, claim.Personal.Email,
		claim.Bank.AccountName, claim.Bank.SortCode, claim.Bank.AccountNumber, claim.Bank.RollNumber,
		claim.QualificationsVerified, claim.SubmittedAt, time.Now(),
		uuid.UUID(claim.ID), expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update claim rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update claim: %w", sentinel.ErrStale)
	}

	if err := upsertEligibility(ctx, tx, elig); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update claim: %w", err)
	}
	claim.Version = expectedVersion + 1
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertEligibility(ctx context.Context, tx execer, elig *models.EligibilityRecord) error {
	answersJSON, err := json.Marshal(elig.Answers)
	if err != nil {
		return fmt.Errorf("encode eligibility answers: %w", err)
	}
	var reason sql.NullString
	if elig.Reason != "" {
		reason = sql.NullString{String: string(elig.Reason), Valid: true}
	}
	query := `
		INSERT INTO eligibilities (claim_id, policy, answers, status, reason, award_amount_pence)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (claim_id) DO UPDATE SET
			answers = EXCLUDED.answers,
			status = EXCLUDED.status,
			reason = EXCLUDED.reason,
			award_amount_pence = EXCLUDED.award_amount_pence
	`
	if _, err := tx.ExecContext(ctx, query,
		uuid.UUID(elig.ClaimID), string(elig.Policy), answersJSON,
		string(elig.Status), reason, elig.AwardAmount,
	); err != nil {
		return fmt.Errorf("upsert eligibility: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, claim_id, name, claim_verifier_match, passed, manual, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (claim_id, name) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(task.ID), uuid.UUID(task.ClaimID), string(task.Name),
		string(task.Match), task.Passed, task.Manual, task.CreatedBy, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append task rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("append task: %w", sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) TasksFor(ctx context.Context, id domain.ClaimID) ([]models.Task, error) {
	query := `
		SELECT id, name, claim_verifier_match, passed, manual, created_by, created_at
		FROM tasks WHERE claim_id = $1 ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var (
			task   models.Task
			taskID uuid.UUID
			name   string
			match  string
		)
		if err := rows.Scan(&taskID, &name, &match, &task.Passed, &task.Manual, &task.CreatedBy, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.ID = domain.TaskID(taskID)
		task.ClaimID = id
		task.Name = models.TaskName(name)
		task.Match = models.Match(match)
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) AppendNote(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, claim_id, body, important, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.ExecContext(ctx, query,
		uuid.UUID(note.ID), uuid.UUID(note.ClaimID), note.Body, note.Important, note.CreatedBy, note.CreatedAt,
	); err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

func (s *PostgresStore) NotesFor(ctx context.Context, id domain.ClaimID) ([]models.Note, error) {
	query := `
		SELECT id, body, important, created_by, created_at
		FROM notes WHERE claim_id = $1 ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(id))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var (
			note   models.Note
			noteID uuid.UUID
		)
		if err := rows.Scan(&noteID, &note.Body, &note.Important, &note.CreatedBy, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.ID = domain.NoteID(noteID)
		note.ClaimID = id
		out = append(out, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}
