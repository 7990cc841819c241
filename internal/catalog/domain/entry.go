// Package domain contains the catalog entry model and its lifecycle rules.
// Entries go through the same pending review flow as accounts, but are
// moderated through the authenticated admin API rather than emailed links.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/errors"
)

// Status is the review state of a catalog entry.
type Status string

// Catalog entry review states.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Pricing is the cost model of the cataloged tool.
type Pricing string

// Supported pricing models.
const (
	PricingFree     Pricing = "free"
	PricingFreemium Pricing = "freemium"
	PricingPaid     Pricing = "paid"
)

// Valid reports whether p is a known pricing model.
func (p Pricing) Valid() bool {
	switch p {
	case PricingFree, PricingFreemium, PricingPaid:
		return true
	}
	return false
}

// Entry is a community-submitted tool listing. SubmittedBy records the email
// of the submitting account; URL is optional.
type Entry struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Role        string
	Description string
	URL         *string
	Pricing     Pricing
	SubmittedBy string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	// ErrEntryNotFound indicates the requested catalog entry does not exist.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "catalog entry not found")

	// ErrEntryAlreadyProcessed indicates the entry already holds a terminal status.
	ErrEntryAlreadyProcessed = errors.Wrap(errors.ErrConflict, "catalog entry already processed")

	// ErrInvalidEntryAction indicates the moderation action is not approve or reject.
	ErrInvalidEntryAction = errors.Wrap(errors.ErrInvalidInput, "unrecognized catalog moderation action")
)

// StatusForAction maps an admin moderation action to the resulting status.
func StatusForAction(rawAction string) (Status, error) {
	switch rawAction {
	case "approve":
		return StatusApproved, nil
	case "reject":
		return StatusRejected, nil
	}
	return "", ErrInvalidEntryAction
}
