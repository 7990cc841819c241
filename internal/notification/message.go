// Package notification delivers templated emails to registrants and
// administrators. Delivery is best-effort: failures are logged and never
// affect the caller's state transition or HTTP response.
package notification

import (
	"github.com/aitoolbox/gatekeeper/internal/errors"
)

// Type discriminates the fixed set of outbound email templates.
type Type string

// Outbound email template variants.
const (
	// TypeRegistrationReceived confirms to the registrant that the request is queued.
	TypeRegistrationReceived Type = "registration-received"
	// TypeAdminNewRequest notifies the administrator and carries the moderation links.
	TypeAdminNewRequest Type = "admin-new-request"
	// TypeApproved notifies the registrant of an approval.
	TypeApproved Type = "approved"
	// TypeRejected notifies the registrant of a rejection.
	TypeRejected Type = "rejected"
)

// Valid reports whether t is a known template type.
func (t Type) Valid() bool {
	switch t {
	case TypeRegistrationReceived, TypeAdminNewRequest, TypeApproved, TypeRejected:
		return true
	}
	return false
}

// ErrUnknownType indicates a message with an unrecognized template type.
var ErrUnknownType = errors.Wrap(errors.ErrInvalidInput, "unknown notification type")

// Message is a templated email to a single recipient. Email and FullName
// always describe the registrant, even when the recipient is the
// administrator. ApproveURL and RejectURL are only set for
// TypeAdminNewRequest.
type Message struct {
	Type       Type
	To         string
	Email      string
	FullName   string
	ApproveURL string
	RejectURL  string
}
