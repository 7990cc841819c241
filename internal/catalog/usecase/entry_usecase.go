// Package usecase implements the catalog business logic.
package usecase

import (
	"context"
	"net/url"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	appValidation "github.com/aitoolbox/gatekeeper/internal/validation"
)

// SubmitEntryInput contains the input data for a catalog submission.
type SubmitEntryInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Role        string `json:"role"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Pricing     string `json:"pricing"`
	SubmittedBy string `json:"submitted_by"`
}

// UseCase defines the interface for catalog business logic operations.
type UseCase interface {
	Submit(ctx context.Context, input SubmitEntryInput) (*domain.Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListApproved(ctx context.Context, category string, offset, limit int) ([]*domain.Entry, error)
	ListPending(ctx context.Context, offset, limit int) ([]*domain.Entry, error)
	Moderate(ctx context.Context, id uuid.UUID, rawAction string) (*domain.Entry, error)
}

// EntryRepository interface defines catalog repository operations.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListByStatus(
		ctx context.Context,
		status domain.Status,
		category string,
		offset, limit int,
	) ([]*domain.Entry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
}

// EntryUseCase handles catalog submissions and moderation.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) UseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

func validHTTPURL(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return validation.NewError("validation_invalid_url", "must be a valid http or https URL")
	}
	return nil
}

func (uc *EntryUseCase) validateSubmitEntryInput(input SubmitEntryInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Category,
			validation.Required.Error("category is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("category must be between 1 and 100 characters"),
		),
		validation.Field(&input.Role,
			validation.Required.Error("role is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("role must be between 1 and 100 characters"),
		),
		validation.Field(&input.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 2000).Error("description must be between 1 and 2000 characters"),
		),
		validation.Field(&input.URL,
			validation.By(validHTTPURL),
		),
		validation.Field(&input.Pricing,
			validation.Required.Error("pricing is required"),
			validation.In(
				string(domain.PricingFree),
				string(domain.PricingFreemium),
				string(domain.PricingPaid),
			).Error("pricing must be one of: free, freemium, paid"),
		),
		validation.Field(&input.SubmittedBy,
			validation.Required.Error("submitted_by is required"),
			appValidation.Email,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Submit creates a PENDING catalog entry awaiting admin review.
func (uc *EntryUseCase) Submit(ctx context.Context, input SubmitEntryInput) (*domain.Entry, error) {
	if err := uc.validateSubmitEntryInput(input); err != nil {
		return nil, err
	}

	var entryURL *string
	if trimmed := strings.TrimSpace(input.URL); trimmed != "" {
		entryURL = &trimmed
	}

	entry := &domain.Entry{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Role:        strings.TrimSpace(input.Role),
		Description: strings.TrimSpace(input.Description),
		URL:         entryURL,
		Pricing:     domain.Pricing(input.Pricing),
		SubmittedBy: strings.TrimSpace(strings.ToLower(input.SubmittedBy)),
		Status:      domain.StatusPending,
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetByID retrieves a catalog entry by ID.
func (uc *EntryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListApproved retrieves publicly visible entries, optionally filtered by
// category.
func (uc *EntryUseCase) ListApproved(
	ctx context.Context,
	category string,
	offset, limit int,
) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByStatus(ctx, domain.StatusApproved, category, offset, limit)
}

// ListPending retrieves entries awaiting review.
func (uc *EntryUseCase) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByStatus(ctx, domain.StatusPending, "", offset, limit)
}

// Moderate applies an admin review decision to a pending entry.
func (uc *EntryUseCase) Moderate(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Entry, error) {
	status, err := domain.StatusForAction(rawAction)
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return uc.entryRepo.GetByID(ctx, id)
}
