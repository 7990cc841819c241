// Package service provides supporting services for account moderation.
package service

// ApprovalTokenService generates the single-use capability tokens embedded in
// moderation links. A token is the sole credential for the approval action, so
// implementations must draw from a cryptographically strong random source.
type ApprovalTokenService interface {
	// Generate returns a new opaque, URL-safe approval token.
	Generate() (string, error)
}
