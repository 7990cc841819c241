package domain

// Status is the tri-state moderation lifecycle shared by account profiles and
// catalog entries. PENDING is the only non-terminal state.
type Status string

// Moderation lifecycle states.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is a moderation action requested through an emailed link.
//
// Actions form a closed set: unrecognized strings are rejected by ParseAction
// before they ever reach the state machine, so a malformed or truncated link
// can never silently approve an account.
type Action string

// Supported moderation actions.
const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ParseAction validates the raw action string from the request. An absent
// action is reported distinctly from an unrecognized one so the endpoint can
// tell a truncated link from a tampered one.
func ParseAction(raw string) (Action, error) {
	switch Action(raw) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	case "":
		return "", ErrMissingAction
	default:
		return "", ErrInvalidAction
	}
}

// TargetStatus returns the terminal state the action transitions to.
func (a Action) TargetStatus() Status {
	if a == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}

// Attempt applies a moderation action to the current state.
//
// approve: PENDING -> APPROVED
// reject:  PENDING -> REJECTED
//
// Attempting a transition from a terminal state is not a programming error:
// the same email link may be opened more than once (re-click, mail client
// prefetch, bookmark). It is reported as ErrAlreadyProcessed and the current
// state is returned unchanged.
func Attempt(current Status, action Action) (Status, error) {
	if current.Terminal() {
		return current, ErrAlreadyProcessed
	}
	if current != StatusPending {
		return current, ErrInvalidStatus
	}
	return action.TargetStatus(), nil
}
