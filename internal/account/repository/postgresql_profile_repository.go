// Package repository provides data persistence implementations for account profiles.
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

// PostgreSQLProfileRepository handles profile persistence for PostgreSQL.
type PostgreSQLProfileRepository struct {
	db *sql.DB
}

// NewPostgreSQLProfileRepository creates a new PostgreSQLProfileRepository.
func NewPostgreSQLProfileRepository(db *sql.DB) *PostgreSQLProfileRepository {
	return &PostgreSQLProfileRepository{db: db}
}

// Create inserts a new profile.
func (r *PostgreSQLProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO profiles (id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

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
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create profile")
	}
	return nil
}

// GetByID retrieves a profile by ID.
func (r *PostgreSQLProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE id = $1`

	return scanProfile(querier.QueryRowContext(ctx, query, id), "failed to get profile by id")
}

// GetByEmail retrieves a profile by email.
func (r *PostgreSQLProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE email = $1`

	return scanProfile(querier.QueryRowContext(ctx, query, email), "failed to get profile by email")
}

// ListPending retrieves pending profiles ordered by creation time, newest first.
func (r *PostgreSQLProfileRepository) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at
			  FROM profiles WHERE status = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, domain.StatusPending, offset, limit)
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
// terminal status and clears the token, as one conditional UPDATE.
//
// The WHERE clause is keyed on the token still being present and the status
// still being PENDING, so of any number of concurrent requests bearing the
// same token at most one can match: the winner gets the updated row back via
// RETURNING, every other request matches zero rows and observes
// ErrTokenNotFoundOrConsumed. There is no separate read before the write.
func (r *PostgreSQLProfileRepository) ConsumeApprovalToken(
	ctx context.Context,
	token string,
	status domain.Status,
	approvedAt *time.Time,
) (*domain.Profile, error) {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE profiles
			  SET status = $1, approval_token = NULL, approved_at = $2, updated_at = NOW()
			  WHERE approval_token = $3 AND status = $4
			  RETURNING id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at`

	row := querier.QueryRowContext(ctx, query, status, approvedAt, token, domain.StatusPending)

	var profile domain.Profile
	err := row.Scan(
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
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTokenNotFoundOrConsumed
		}
		return nil, apperrors.Wrap(err, "failed to consume approval token")
	}

	return &profile, nil
}

// SetStatus transitions a pending profile to the given terminal status by ID,
// clearing any outstanding approval token in the same conditional UPDATE.
// Used by the authenticated in-app moderation flow. Returns
// ErrAlreadyProcessed if the profile exists but is no longer PENDING.
func (r *PostgreSQLProfileRepository) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
	approvedAt *time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE profiles
			  SET status = $1, approval_token = NULL, approved_at = $2, updated_at = NOW()
			  WHERE id = $3 AND status = $4`

	result, err := querier.ExecContext(ctx, query, status, approvedAt, id, domain.StatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to set profile status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		// Distinguish a missing profile from one already moderated
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrAlreadyProcessed
	}

	return nil
}

// scanProfile scans a single profile row, mapping sql.ErrNoRows to the domain error.
func scanProfile(row *sql.Row, wrapMsg string) (*domain.Profile, error) {
	var profile domain.Profile
	err := row.Scan(
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
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, wrapMsg)
	}
	return &profile, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
