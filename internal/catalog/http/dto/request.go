// Package dto provides data transfer objects for catalog HTTP request and
// response handling.
package dto

import (
	"github.com/aitoolbox/gatekeeper/internal/catalog/usecase"
)

// SubmitEntryRequest contains the parameters for a catalog submission.
type SubmitEntryRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Role        string `json:"role"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Pricing     string `json:"pricing"`
	SubmittedBy string `json:"submitted_by"`
}

// ToSubmitEntryInput converts the request DTO to a use case input.
func ToSubmitEntryInput(req SubmitEntryRequest) usecase.SubmitEntryInput {
	return usecase.SubmitEntryInput{
		Name:        req.Name,
		Category:    req.Category,
		Role:        req.Role,
		Description: req.Description,
		URL:         req.URL,
		Pricing:     req.Pricing,
		SubmittedBy: req.SubmittedBy,
	}
}

// ModerateEntryRequest contains the action for the admin review endpoint.
type ModerateEntryRequest struct {
	Action string `json:"action"`
}
