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

func newMySQLMockDB(t *testing.T) (*MySQLProfileRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewMySQLProfileRepository(db), mock
}

func TestMySQLProfileRepository_Create(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
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

func TestMySQLProfileRepository_Create_DuplicateEntry(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
	profile := pendingProfile()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'maria@example.com' for key 'profiles.email'"))

	err := repo.Create(context.Background(), profile)

	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestMySQLProfileRepository_ConsumeApprovalToken_Applied(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()
	approvedAt := now

	// The lock, the conditional clear, and the reload commit as one unit.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM profiles WHERE approval_token = ? AND status = ? FOR UPDATE")).
		WithArgs("tok-abc", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WithArgs(domain.StatusApproved, &approvedAt, id, "tok-abc", domain.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, full_name, password, status, approval_token, approved_at, created_at, updated_at")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(id, "maria@example.com", "Maria Petrova", "hash", "APPROVED", nil, approvedAt, now, now))
	mock.ExpectCommit()

	profile, err := repo.ConsumeApprovalToken(
		context.Background(), "tok-abc", domain.StatusApproved, &approvedAt,
	)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, profile.Status)
	assert.Nil(t, profile.ApprovalToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProfileRepository_ConsumeApprovalToken_NotFoundOrConsumed(t *testing.T) {
	repo, mock := newMySQLMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM profiles WHERE approval_token = ? AND status = ? FOR UPDATE")).
		WithArgs("unknown-xyz", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := repo.ConsumeApprovalToken(
		context.Background(), "unknown-xyz", domain.StatusApproved, nil,
	)

	assert.ErrorIs(t, err, domain.ErrTokenNotFoundOrConsumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProfileRepository_ConsumeApprovalToken_RaceLoser(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
	id := uuid.Must(uuid.NewV7())

	// The row matched the lock query but the conditional update found the
	// token already cleared: the loser observes the same not-found outcome.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM profiles WHERE approval_token = ? AND status = ? FOR UPDATE")).
		WithArgs("tok-abc", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ConsumeApprovalToken(
		context.Background(), "tok-abc", domain.StatusRejected, nil,
	)

	assert.ErrorIs(t, err, domain.ErrTokenNotFoundOrConsumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLProfileRepository_SetStatus_AlreadyProcessed(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
	id := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(id, "maria@example.com", "Maria Petrova", "hash", "REJECTED", nil, nil, now, now))

	err := repo.SetStatus(context.Background(), id, domain.StatusApproved, nil)

	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestMySQLProfileRepository_ListPending(t *testing.T) {
	repo, mock := newMySQLMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT").
		WithArgs(domain.StatusPending, 20, 10).
		WillReturnRows(sqlmock.NewRows(profileColumns).
			AddRow(uuid.Must(uuid.NewV7()), "a@example.com", "A", "hash", "PENDING", "tok-a", nil, now, now))

	profiles, err := repo.ListPending(context.Background(), 10, 20)

	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
