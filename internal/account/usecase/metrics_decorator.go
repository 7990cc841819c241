package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/metrics"
)

// profileUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type profileUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewProfileUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewProfileUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &profileUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *profileUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "account", operation, status)
	p.metrics.RecordDuration(ctx, "account", operation, time.Since(start), status)
}

// Register records metrics for registration operations.
func (p *profileUseCaseWithMetrics) Register(
	ctx context.Context,
	input RegisterProfileInput,
) (*domain.Profile, error) {
	start := time.Now()
	profile, err := p.next.Register(ctx, input)
	p.record(ctx, "profile_register", start, err)
	return profile, err
}

// Moderate records metrics for token-based moderation operations.
func (p *profileUseCaseWithMetrics) Moderate(
	ctx context.Context,
	token, rawAction string,
) (*ModerationResult, error) {
	start := time.Now()
	result, err := p.next.Moderate(ctx, token, rawAction)
	p.record(ctx, "profile_moderate", start, err)
	return result, err
}

// GetByID records metrics for profile retrieval operations.
func (p *profileUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	start := time.Now()
	profile, err := p.next.GetByID(ctx, id)
	p.record(ctx, "profile_get", start, err)
	return profile, err
}

// ListPending records metrics for pending list operations.
func (p *profileUseCaseWithMetrics) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Profile, error) {
	start := time.Now()
	profiles, err := p.next.ListPending(ctx, offset, limit)
	p.record(ctx, "profile_list_pending", start, err)
	return profiles, err
}

// SetStatus records metrics for admin moderation operations.
func (p *profileUseCaseWithMetrics) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Profile, error) {
	start := time.Now()
	profile, err := p.next.SetStatus(ctx, id, rawAction)
	p.record(ctx, "profile_set_status", start, err)
	return profile, err
}
