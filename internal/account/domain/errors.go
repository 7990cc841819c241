package domain

import (
	"github.com/aitoolbox/gatekeeper/internal/errors"
)

// Domain-specific errors for account moderation operations.
var (
	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.Wrap(errors.ErrNotFound, "profile not found")

	// ErrProfileAlreadyExists indicates a profile with the same email already exists.
	ErrProfileAlreadyExists = errors.Wrap(errors.ErrConflict, "profile already exists")

	// ErrTokenNotFoundOrConsumed indicates no pending profile currently holds the
	// presented approval token. The token either never existed or was already
	// consumed; the two cases are deliberately indistinguishable so a caller
	// probing with guessed tokens learns nothing.
	ErrTokenNotFoundOrConsumed = errors.Wrap(errors.ErrNotFound, "approval token not found or already consumed")

	// ErrAlreadyProcessed indicates the profile already holds a terminal status.
	ErrAlreadyProcessed = errors.Wrap(errors.ErrConflict, "moderation request already processed")

	// ErrInvalidStatus indicates an unknown lifecycle state was encountered.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid profile status")

	// ErrMissingToken indicates the moderation request carried no approval token.
	ErrMissingToken = errors.Wrap(errors.ErrInvalidInput, "approval token is required")

	// ErrMissingAction indicates the moderation request carried no action parameter.
	ErrMissingAction = errors.Wrap(errors.ErrInvalidInput, "moderation action is required")

	// ErrInvalidAction indicates the action parameter is not approve or reject.
	ErrInvalidAction = errors.Wrap(errors.ErrInvalidInput, "unrecognized moderation action")

	// ErrEmailRequired indicates the email field is required.
	ErrEmailRequired = errors.Wrap(errors.ErrInvalidInput, "email is required")

	// ErrFullNameRequired indicates the full name field is required.
	ErrFullNameRequired = errors.Wrap(errors.ErrInvalidInput, "full name is required")
)
