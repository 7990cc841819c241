// Package domain defines the core account profile entities and the moderation
// status lifecycle.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents an account profile awaiting or holding a moderation decision.
//
// ApprovalToken is the single-use capability embedded in the moderation links
// emailed to the administrator. It is present if and only if the profile is
// still PENDING and a moderation email has been issued; it is cleared in the
// same atomic operation that moves the status out of PENDING.
type Profile struct {
	ID            uuid.UUID
	Email         string
	FullName      string
	Password      string
	Status        Status
	ApprovalToken *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPending reports whether the profile is still awaiting a moderation decision.
func (p *Profile) IsPending() bool {
	return p.Status == StatusPending
}
