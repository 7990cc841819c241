// Package http provides HTTP handlers for account registration and
// moderation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/account/http/dto"
	"github.com/aitoolbox/gatekeeper/internal/account/usecase"
	"github.com/aitoolbox/gatekeeper/internal/httputil"
)

// ProfileHandler handles account registration and the authenticated admin
// moderation API.
type ProfileHandler struct {
	profileUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileUseCase usecase.UseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// RegisterHandler handles profile registration.
// POST /v1/accounts
func (h *ProfileHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.Register(c.Request.Context(), dto.ToRegisterProfileInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// GetHandler retrieves a single profile.
// GET /v1/accounts/:id - admin only.
func (h *ProfileHandler) GetHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrProfileNotFound, h.logger)
		return
	}

	profile, err := h.profileUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// ListPendingHandler lists profiles waiting for moderation, newest first.
// GET /v1/accounts/pending?offset=0&limit=50 - admin only.
func (h *ProfileHandler) ListPendingHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	profiles, err := h.profileUseCase.ListPending(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListProfilesResponse(profiles, offset, limit))
}

// SetStatusHandler applies a moderation action to a pending profile by ID,
// bypassing the emailed link.
// POST /v1/accounts/:id/status - admin only.
func (h *ProfileHandler) SetStatusHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrProfileNotFound, h.logger)
		return
	}

	var req dto.ModerateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	profile, err := h.profileUseCase.SetStatus(c.Request.Context(), id, req.Action)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
