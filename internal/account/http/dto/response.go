package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
)

// ProfileResponse is the public representation of a profile. The password
// hash and the approval token never leave the service.
type ProfileResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Status     string     `json:"status"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToProfileResponse converts a domain profile to its response DTO.
func ToProfileResponse(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         profile.ID,
		Email:      profile.Email,
		FullName:   profile.FullName,
		Status:     string(profile.Status),
		ApprovedAt: profile.ApprovedAt,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}

// ListProfilesResponse is the paginated pending profile listing.
type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// ToListProfilesResponse converts domain profiles to a listing response.
func ToListProfilesResponse(profiles []*domain.Profile, offset, limit int) ListProfilesResponse {
	items := make([]ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, ToProfileResponse(profile))
	}
	return ListProfilesResponse{Profiles: items, Offset: offset, Limit: limit}
}
