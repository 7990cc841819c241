// Package repository implements catalog entry persistence for PostgreSQL and
// MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	"github.com/aitoolbox/gatekeeper/internal/database"

	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
)

// PostgreSQLEntryRepository handles catalog entry persistence for PostgreSQL.
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntryRepository creates a new PostgreSQLEntryRepository.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}

// Create inserts a new catalog entry.
func (r *PostgreSQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO catalog_entries (id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Name,
		entry.Category,
		entry.Role,
		entry.Description,
		entry.URL,
		entry.Pricing,
		entry.SubmittedBy,
		entry.Status,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create catalog entry")
	}
	return nil
}

// GetByID retrieves a catalog entry by ID.
func (r *PostgreSQLEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at
			  FROM catalog_entries WHERE id = $1`

	return scanEntry(querier.QueryRowContext(ctx, query, id))
}

// ListByStatus retrieves entries in the given status, newest first, optionally
// filtered by category.
func (r *PostgreSQLEntryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
	category string,
	offset, limit int,
) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at
			  FROM catalog_entries WHERE status = $1`
	args := []any{status}

	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list catalog entries")
	}
	defer func() { _ = rows.Close() }()

	return collectEntries(rows)
}

// UpdateStatus transitions a pending entry to the given terminal status.
// Returns ErrEntryAlreadyProcessed if the entry exists but is no longer
// PENDING.
func (r *PostgreSQLEntryRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE catalog_entries
			  SET status = $1, updated_at = NOW()
			  WHERE id = $2 AND status = $3`

	result, err := querier.ExecContext(ctx, query, status, id, domain.StatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to update catalog entry status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrEntryAlreadyProcessed
	}

	return nil
}

func scanEntry(row *sql.Row) (*domain.Entry, error) {
	var entry domain.Entry
	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Category,
		&entry.Role,
		&entry.Description,
		&entry.URL,
		&entry.Pricing,
		&entry.SubmittedBy,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan catalog entry")
	}
	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		var entry domain.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Category,
			&entry.Role,
			&entry.Description,
			&entry.URL,
			&entry.Pricing,
			&entry.SubmittedBy,
			&entry.Status,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan catalog entry")
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate catalog entries")
	}
	return entries, nil
}
