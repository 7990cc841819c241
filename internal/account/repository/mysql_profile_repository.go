package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/database"

	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
)

// MySQLProfileRepository handles profile persistence for MySQL.
type MySQLProfileRepository struct {
	db *sql.DB
}

// NewMySQLProfileRepository creates a new MySQLProfileRepository.
func NewMySQLProfileRepository(db *sql.DB) *MySQLProfileRepository {
	return &MySQLProfileRepository{db: db}
}

// Create inserts a new profile.
func (r *MySQLProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profiles (id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.Password,
		profile.Status,
		profile.ApprovalToken,
		profile.ApprovedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrProfileAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// GetByID retrieves a profile by ID.
func (r *MySQLProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE id = ?`

	return scanProfile(querier.QueryRowContext(ctx, query, id), "failed to get profile by id")
}

// GetByEmail retrieves a profile by email.
func (r *MySQLProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE email = ?`

	return scanProfile(querier.QueryRowContext(ctx, query, email), "failed to get profile by email")
}

// ListPending retrieves pending profiles ordered by creation time, newest first.
func (r *MySQLProfileRepository) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE status = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, domain.StatusPending, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pending profiles")
	}
	defer func() { _ = rows.Close() }()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.Email,
			&profile.FullName,
			&profile.Password,
			&profile.Status,
			&profile.ApprovalToken,
			&profile.ApprovedAt,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan pending profile")
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate pending profiles")
	}

	return profiles, nil
}

// ConsumeApprovalToken transitions the profile holding the token to the given
// terminal status and clears the token.
//
// MySQL has no UPDATE ... RETURNING, so the compare-and-clear runs inside a
// single transaction with a SELECT ... FOR UPDATE row lock: concurrent
// requests bearing the same token serialize on the lock, and every request
// after the first finds the token already cleared and observes
// ErrTokenNotFoundOrConsumed. The at-most-once guarantee is identical to the
// PostgreSQL single-statement form.
func (r *MySQLProfileRepository) ConsumeApprovalToken(
	ctx context.Context,
	token string,
	status domain.Status,
	approvedAt *time.Time,
) (*domain.Profile, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var id uuid.UUID
	lockQuery := `SELECT id FROM profiles WHERE approval_token = ? AND status = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, token, domain.StatusPending).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFoundOrConsumed
		}
		return nil, apperrors.Wrap(err, "failed to lock profile by approval token")
	}

	updateQuery := `UPDATE profiles
					SET status = ?, approval_token = NULL, approved_at = ?, updated_at = NOW()
					WHERE id = ? AND approval_token = ? AND status = ?`

	result, err := tx.ExecContext(ctx, updateQuery, status, approvedAt, id, token, domain.StatusPending)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume approval token")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return nil, domain.ErrTokenNotFoundOrConsumed
	}

	selectQuery := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
					FROM profiles WHERE id = ?`

	var profile domain.Profile
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Password,
		&profile.Status,
		&profile.ApprovalToken,
		&profile.ApprovedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to reload consumed profile")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Wrap(err, "failed to commit token consumption")
	}

	return &profile, nil
}

// SetStatus transitions a pending profile to the given terminal status by ID,
// clearing any outstanding approval token in the same conditional UPDATE.
// Returns ErrAlreadyProcessed if the profile exists but is no longer PENDING.
func (r *MySQLProfileRepository) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
	approvedAt *time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE profiles
			  SET status = ?, approval_token = NULL, approved_at = ?, updated_at = NOW()
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, status, approvedAt, id, domain.StatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to set profile status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrAlreadyProcessed
	}

	return nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate key violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	// MySQL: "Error 1062 (23000): Duplicate entry ..."
	return strings.Contains(strings.ToLower(err.Error()), "duplicate entry")
}
