package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
)

var entryColumns = []string{
	"id", "name", "category", "role", "description", "url",
	"pricing", "submitted_by", "status", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*PostgreSQLEntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgreSQLEntryRepository(db), mock
}

func pendingEntry() *domain.Entry {
	entryURL := "https://promptpilot.example.com"
	return &domain.Entry{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "PromptPilot",
		Category:    "writing",
		Role:        "copywriter",
		Description: "Drafts and rewrites marketing copy.",
		URL:         &entryURL,
		Pricing:     domain.PricingFreemium,
		SubmittedBy: "maria@example.com",
		Status:      domain.StatusPending,
	}
}

func TestPostgreSQLEntryRepository_Create(t *testing.T) {
	repo, mock := newMockDB(t)
	entry := pendingEntry()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog_entries")).
		WithArgs(
			entry.ID,
			entry.Name,
			entry.Category,
			entry.Role,
			entry.Description,
			entry.URL,
			entry.Pricing,
			entry.SubmittedBy,
			entry.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), entry)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(entryColumns))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestPostgreSQLEntryRepository_ListByStatus(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT").
		WithArgs(domain.StatusApproved, 50, 0).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow(uuid.Must(uuid.NewV7()), "PromptPilot", "writing", "copywriter", "desc", nil,
				"freemium", "maria@example.com", "APPROVED", now, now))

	entries, err := repo.ListByStatus(context.Background(), domain.StatusApproved, "", 0, 50)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Nil(t, entries[0].URL)
}

func TestPostgreSQLEntryRepository_ListByStatus_CategoryFilter(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT").
		WithArgs(domain.StatusApproved, "writing", 20, 10).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow(uuid.Must(uuid.NewV7()), "PromptPilot", "writing", "copywriter", "desc", nil,
				"free", "maria@example.com", "APPROVED", now, now))

	entries, err := repo.ListByStatus(context.Background(), domain.StatusApproved, "writing", 10, 20)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "writing", entries[0].Category)
}

func TestPostgreSQLEntryRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog_entries")).
		WithArgs(domain.StatusApproved, id, domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, domain.StatusApproved)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEntryRepository_UpdateStatus_AlreadyProcessed(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog_entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow(id, "PromptPilot", "writing", "copywriter", "desc", nil,
				"paid", "maria@example.com", "REJECTED", now, now))

	err := repo.UpdateStatus(context.Background(), id, domain.StatusApproved)

	assert.ErrorIs(t, err, domain.ErrEntryAlreadyProcessed)
}

func TestPostgreSQLEntryRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE catalog_entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(entryColumns))

	err := repo.UpdateStatus(context.Background(), id, domain.StatusRejected)

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}
