// Package usecase implements the account business logic and orchestrates
// registration and moderation operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/account/service"
	"github.com/aitoolbox/gatekeeper/internal/database"
	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
	"github.com/aitoolbox/gatekeeper/internal/notification"
	appValidation "github.com/aitoolbox/gatekeeper/internal/validation"
)

// RegisterProfileInput contains the input data for profile registration.
type RegisterProfileInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ModerationResult reports the outcome of a consumed moderation link.
type ModerationResult struct {
	Profile *domain.Profile
	Action  domain.Action
}

// UseCase defines the interface for account business logic operations.
type UseCase interface {
	Register(ctx context.Context, input RegisterProfileInput) (*domain.Profile, error)
	Moderate(ctx context.Context, token, rawAction string) (*ModerationResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListPending(ctx context.Context, offset, limit int) ([]*domain.Profile, error)
	SetStatus(ctx context.Context, id uuid.UUID, rawAction string) (*domain.Profile, error)
}

// ProfileRepository interface defines profile repository operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ListPending(ctx context.Context, offset, limit int) ([]*domain.Profile, error)
	ConsumeApprovalToken(
		ctx context.Context,
		token string,
		status domain.Status,
		approvedAt *time.Time,
	) (*domain.Profile, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status, approvedAt *time.Time) error
}

// Enqueuer schedules a notification without blocking the caller.
type Enqueuer interface {
	Enqueue(msg notification.Message)
}

// ProfileUseCase handles account registration and moderation business logic.
type ProfileUseCase struct {
	txManager      database.TxManager
	profileRepo    ProfileRepository
	tokenService   service.ApprovalTokenService
	enqueuer       Enqueuer
	passwordHasher *pwdhash.PasswordHasher
	appBaseURL     string
	adminEmail     string
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(
	txManager database.TxManager,
	profileRepo ProfileRepository,
	tokenService service.ApprovalTokenService,
	enqueuer Enqueuer,
	appBaseURL string,
	adminEmail string,
) (UseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &ProfileUseCase{
		txManager:      txManager,
		profileRepo:    profileRepo,
		tokenService:   tokenService,
		enqueuer:       enqueuer,
		passwordHasher: hasher,
		appBaseURL:     appBaseURL,
		adminEmail:     adminEmail,
	}, nil
}

// validateRegisterProfileInput validates the registration input.
func (uc *ProfileUseCase) validateRegisterProfileInput(input RegisterProfileInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.FullName,
			validation.Required.Error("full_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("full_name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a PENDING profile, issues its single-use approval token and
// notifies both the registrant and the administrator. Notifications are
// enqueued after the profile is committed and cannot fail the registration.
func (uc *ProfileUseCase) Register(
	ctx context.Context,
	input RegisterProfileInput,
) (*domain.Profile, error) {
	if err := uc.validateRegisterProfileInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	token, err := uc.tokenService.Generate()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate approval token")
	}

	profile := &domain.Profile{
		ID:            uuid.Must(uuid.NewV7()),
		Email:         strings.TrimSpace(strings.ToLower(input.Email)),
		FullName:      strings.TrimSpace(input.FullName),
		Password:      hashedPassword,
		Status:        domain.StatusPending,
		ApprovalToken: &token,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	uc.enqueuer.Enqueue(notification.Message{
		Type:     notification.TypeRegistrationReceived,
		To:       profile.Email,
		Email:    profile.Email,
		FullName: profile.FullName,
	})

	approveURL, rejectURL := notification.ModerationLinks(uc.appBaseURL, token)
	uc.enqueuer.Enqueue(notification.Message{
		Type:       notification.TypeAdminNewRequest,
		To:         uc.adminEmail,
		Email:      profile.Email,
		FullName:   profile.FullName,
		ApproveURL: approveURL,
		RejectURL:  rejectURL,
	})

	return profile, nil
}

// Moderate consumes an approval token and applies the requested action. The
// compare-and-clear in the repository guarantees that of any number of
// concurrent requests bearing the same token, exactly one is applied; all
// others observe ErrTokenNotFoundOrConsumed and trigger no side effects.
func (uc *ProfileUseCase) Moderate(
	ctx context.Context,
	token, rawAction string,
) (*ModerationResult, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrMissingToken
	}

	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	var approvedAt *time.Time
	if action == domain.ActionApprove {
		now := time.Now().UTC()
		approvedAt = &now
	}

	profile, err := uc.profileRepo.ConsumeApprovalToken(ctx, token, action.TargetStatus(), approvedAt)
	if err != nil {
		return nil, err
	}

	uc.enqueueOutcome(profile, action)

	return &ModerationResult{Profile: profile, Action: action}, nil
}

// GetByID retrieves a profile by ID.
func (uc *ProfileUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

// ListPending retrieves pending profiles, newest first.
func (uc *ProfileUseCase) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Profile, error) {
	return uc.profileRepo.ListPending(ctx, offset, limit)
}

// SetStatus applies a moderation action to a pending profile by ID. This is
// the authenticated admin path, used when the emailed link is unavailable.
func (uc *ProfileUseCase) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Profile, error) {
	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	var approvedAt *time.Time
	if action == domain.ActionApprove {
		now := time.Now().UTC()
		approvedAt = &now
	}

	if err := uc.profileRepo.SetStatus(ctx, id, action.TargetStatus(), approvedAt); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.enqueueOutcome(profile, action)

	return profile, nil
}

func (uc *ProfileUseCase) enqueueOutcome(profile *domain.Profile, action domain.Action) {
	outcomeType := notification.TypeApproved
	if action == domain.ActionReject {
		outcomeType = notification.TypeRejected
	}

	uc.enqueuer.Enqueue(notification.Message{
		Type:     outcomeType,
		To:       profile.Email,
		Email:    profile.Email,
		FullName: profile.FullName,
	})
}
