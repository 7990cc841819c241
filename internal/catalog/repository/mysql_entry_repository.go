package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	"github.com/aitoolbox/gatekeeper/internal/database"

	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
)

// MySQLEntryRepository handles catalog entry persistence for MySQL.
type MySQLEntryRepository struct {
	db *sql.DB
}

// NewMySQLEntryRepository creates a new MySQLEntryRepository.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}

// Create inserts a new catalog entry.
func (r *MySQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO catalog_entries (id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

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
func (r *MySQLEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at
			  FROM catalog_entries WHERE id = ?`

	return scanEntry(querier.QueryRowContext(ctx, query, id))
}

// ListByStatus retrieves entries in the given status, newest first, optionally
// filtered by category.
func (r *MySQLEntryRepository) ListByStatus(
	ctx context.Context,
	status domain.Status,
	category string,
	offset, limit int,
) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, category, role, description, url, pricing, submitted_by, status, created_at, updated_at
			  FROM catalog_entries WHERE status = ?`
	args := []any{status}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
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
func (r *MySQLEntryRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE catalog_entries
			  SET status = ?, updated_at = NOW()
			  WHERE id = ? AND status = ?`

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
