package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
)

var profileColumns = []string{
	"id", "email", "full_name", "password", "status",
	"approval_token", "approved_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*PostgreSQLProfileRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgreSQLProfileRepository(db), mock
}

func pendingProfile() *domain.Profile {
	token := "tok-abc"
	return &domain.Profile{
		ID:            uuid.Must(uuid.NewV7()),
		Email:         "maria@example.com",
		FullName:      "Maria Petrova",
		Password:      "$argon2id$v=19$m=65536,t=3,p=4$hash",
		Status:        domain.StatusPending,
		ApprovalToken: &token,
	}
}

func TestPostgreSQLProfileRepository_Create(t *testing.T) {
	repo, mock := newMockDB(t)
	profile := pendingProfile()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(
			profile.ID,
			profile.Email,
			profile.FullName,
			profile.Password,
			profile.Status,
			profile.ApprovalToken,
			nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), profile)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProfileRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock := newMockDB(t)
	profile := pendingProfile()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "profiles_email_key"`))

	err := repo.Create(context.Background(), profile)

	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestPostgreSQLProfileRepository_GetByID(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(id, "maria@example.com", "Maria Petrova", "hash", "PENDING", "tok-abc", nil, now, now))

	profile, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, domain.StatusPending, profile.Status)
	require.NotNil(t, profile.ApprovalToken)
	assert.Equal(t, "tok-abc", *profile.ApprovalToken)
	assert.Nil(t, profile.ApprovedAt)
}

func TestPostgreSQLProfileRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestPostgreSQLProfileRepository_ConsumeApprovalToken_Applied(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()
	approvedAt := now

	// The consumption is a single conditional UPDATE keyed on the token still
	// being present and the row still being PENDING.
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE profiles")).
		WithArgs(domain.StatusApproved, &approvedAt, "tok-abc", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(id, "maria@example.com", "Maria Petrova", "hash", "APPROVED", nil, approvedAt, now, now))

	profile, err := repo.ConsumeApprovalToken(
		context.Background(), "tok-abc", domain.StatusApproved, &approvedAt,
	)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, profile.Status)
	assert.Nil(t, profile.ApprovalToken)
	require.NotNil(t, profile.ApprovedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProfileRepository_ConsumeApprovalToken_NotFoundOrConsumed(t *testing.T) {
	repo, mock := newMockDB(t)

	// Zero matched rows: the token never existed or a concurrent request won.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles")).
		WithArgs(domain.StatusRejected, nil, "unknown-xyz", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := repo.ConsumeApprovalToken(
		context.Background(), "unknown-xyz", domain.StatusRejected, nil,
	)

	assert.ErrorIs(t, err, domain.ErrTokenNotFoundOrConsumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProfileRepository_SetStatus(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())
	approvedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WithArgs(domain.StatusApproved, &approvedAt, id, domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetStatus(context.Background(), id, domain.StatusApproved, &approvedAt)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLProfileRepository_SetStatus_AlreadyProcessed(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(id, "maria@example.com", "Maria Petrova", "hash", "APPROVED", nil, now, now, now))

	err := repo.SetStatus(context.Background(), id, domain.StatusRejected, nil)

	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestPostgreSQLProfileRepository_SetStatus_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	err := repo.SetStatus(context.Background(), id, domain.StatusRejected, nil)

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestPostgreSQLProfileRepository_ListPending(t *testing.T) {
	repo, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT").
		WithArgs(domain.StatusPending, 0, 50).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(uuid.Must(uuid.NewV7()), "a@example.com", "A", "hash", "PENDING", "tok-a", nil, now, now).
			AddRow(uuid.Must(uuid.NewV7()), "b@example.com", "B", "hash", "PENDING", "tok-b", nil, now, now))

	profiles, err := repo.ListPending(context.Background(), 0, 50)

	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	for _, p := range profiles {
		assert.Equal(t, domain.StatusPending, p.Status)
	}
}
