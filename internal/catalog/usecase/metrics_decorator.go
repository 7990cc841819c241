package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	"github.com/aitoolbox/gatekeeper/internal/metrics"
)

// entryUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type entryUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewEntryUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewEntryUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &entryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *entryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "catalog", operation, status)
	e.metrics.RecordDuration(ctx, "catalog", operation, time.Since(start), status)
}

// Submit records metrics for catalog submissions.
func (e *entryUseCaseWithMetrics) Submit(
	ctx context.Context,
	input SubmitEntryInput,
) (*domain.Entry, error) {
	start := time.Now()
	entry, err := e.next.Submit(ctx, input)
	e.record(ctx, "entry_submit", start, err)
	return entry, err
}

// GetByID records metrics for entry retrieval.
func (e *entryUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	start := time.Now()
	entry, err := e.next.GetByID(ctx, id)
	e.record(ctx, "entry_get", start, err)
	return entry, err
}

// ListApproved records metrics for public listings.
func (e *entryUseCaseWithMetrics) ListApproved(
	ctx context.Context,
	category string,
	offset, limit int,
) ([]*domain.Entry, error) {
	start := time.Now()
	entries, err := e.next.ListApproved(ctx, category, offset, limit)
	e.record(ctx, "entry_list_approved", start, err)
	return entries, err
}

// ListPending records metrics for review queue listings.
func (e *entryUseCaseWithMetrics) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Entry, error) {
	start := time.Now()
	entries, err := e.next.ListPending(ctx, offset, limit)
	e.record(ctx, "entry_list_pending", start, err)
	return entries, err
}

// Moderate records metrics for admin review decisions.
func (e *entryUseCaseWithMetrics) Moderate(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Entry, error) {
	start := time.Now()
	entry, err := e.next.Moderate(ctx, id, rawAction)
	e.record(ctx, "entry_moderate", start, err)
	return entry, err
}
