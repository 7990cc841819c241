package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
)

// EntryResponse is the public representation of a catalog entry.
type EntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	URL         *string   `json:"url,omitempty"`
	Pricing     string    `json:"pricing"`
	SubmittedBy string    `json:"submitted_by"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToEntryResponse converts a domain entry to its response DTO.
func ToEntryResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		Name:        entry.Name,
		Category:    entry.Category,
		Role:        entry.Role,
		Description: entry.Description,
		URL:         entry.URL,
		Pricing:     string(entry.Pricing),
		SubmittedBy: entry.SubmittedBy,
		Status:      string(entry.Status),
		CreatedAt:   entry.CreatedAt,
		UpdatedAt:   entry.UpdatedAt,
	}
}

// ListEntriesResponse is a paginated catalog listing.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

// ToListEntriesResponse converts domain entries to a listing response.
func ToListEntriesResponse(entries []*domain.Entry, offset, limit int) ListEntriesResponse {
	items := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ToEntryResponse(entry))
	}
	return ListEntriesResponse{Entries: items, Offset: offset, Limit: limit}
}
