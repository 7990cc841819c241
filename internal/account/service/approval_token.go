package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
)

// tokenByteLength is the raw entropy per token. 32 bytes (256 bits) keeps
// tokens infeasible to guess or enumerate.
const tokenByteLength = 32

// approvalTokenService implements ApprovalTokenService using crypto/rand.
type approvalTokenService struct{}

// NewApprovalTokenService creates a new ApprovalTokenService instance.
func NewApprovalTokenService() ApprovalTokenService {
	return &approvalTokenService{}
}

// Generate creates a new cryptographically secure random token.
// The token is base64 URL-encoded so it can be embedded directly in a
// moderation link query parameter.
func (s *approvalTokenService) Generate() (string, error) {
	randomBytes := make([]byte, tokenByteLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate approval token")
	}

	return base64.URLEncoding.EncodeToString(randomBytes), nil
}
