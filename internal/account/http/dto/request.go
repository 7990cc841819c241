// Package dto provides data transfer objects for account HTTP request and
// response handling.
package dto

import (
	"github.com/aitoolbox/gatekeeper/internal/account/usecase"
)

// RegisterProfileRequest contains the parameters for registering a profile.
type RegisterProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToRegisterProfileInput converts the request DTO to a use case input.
func ToRegisterProfileInput(req RegisterProfileRequest) usecase.RegisterProfileInput {
	return usecase.RegisterProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
}

// ModerateProfileRequest contains the action for the authenticated admin
// moderation endpoint.
type ModerateProfileRequest struct {
	Action string `json:"action"`
}
