// Package http provides HTTP handlers for catalog submissions and review.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	"github.com/aitoolbox/gatekeeper/internal/catalog/http/dto"
	"github.com/aitoolbox/gatekeeper/internal/catalog/usecase"
	"github.com/aitoolbox/gatekeeper/internal/httputil"
)

// EntryHandler handles catalog submission, listing and review requests.
type EntryHandler struct {
	entryUseCase usecase.UseCase
	logger       *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUseCase usecase.UseCase, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		entryUseCase: entryUseCase,
		logger:       logger,
	}
}

// SubmitHandler handles catalog submissions.
// POST /v1/catalog
func (h *EntryHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entry, err := h.entryUseCase.Submit(c.Request.Context(), dto.ToSubmitEntryInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// ListApprovedHandler lists publicly visible entries.
// GET /v1/catalog?category=writing&offset=0&limit=50
func (h *EntryHandler) ListApprovedHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, err := h.entryUseCase.ListApproved(c.Request.Context(), c.Query("category"), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, offset, limit))
}

// ListPendingHandler lists entries awaiting review.
// GET /v1/catalog/pending - admin only.
func (h *EntryHandler) ListPendingHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, err := h.entryUseCase.ListPending(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, offset, limit))
}

// ModerateHandler applies a review decision to a pending entry.
// POST /v1/catalog/:id/status - admin only.
func (h *EntryHandler) ModerateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrEntryNotFound, h.logger)
		return
	}

	var req dto.ModerateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entry, err := h.entryUseCase.Moderate(c.Request.Context(), id, req.Action)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
