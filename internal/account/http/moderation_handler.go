package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/account/usecase"
	apperrors "github.com/aitoolbox/gatekeeper/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

var moderationTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ModerationHandler serves the unauthenticated moderation endpoint hit by the
// links in the administrator notification email. The approval token in the
// query string is the sole credential; responses are HTML pages meant to be
// opened in a browser.
type ModerationHandler struct {
	profileUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewModerationHandler creates a new ModerationHandler.
func NewModerationHandler(profileUseCase usecase.UseCase, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

type moderationPage struct {
	FullName string
}

// ModerateHandler consumes an approval token and renders the outcome.
// GET /moderation?token=...&action=approve|reject
func (h *ModerationHandler) ModerateHandler(c *gin.Context) {
	token := c.Query("token")
	action := c.Query("action")

	result, err := h.profileUseCase.Moderate(c.Request.Context(), token, action)
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	page := moderationPage{FullName: result.Profile.FullName}
	if result.Action == domain.ActionApprove {
		h.render(c, http.StatusOK, "approved.html", page)
		return
	}
	h.render(c, http.StatusOK, "rejected.html", page)
}

func (h *ModerationHandler) renderFailure(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		// Missing token, missing action or an unrecognized action.
		h.render(c, http.StatusBadRequest, "invalid_request.html", moderationPage{})
	case apperrors.Is(err, domain.ErrTokenNotFoundOrConsumed):
		h.render(c, http.StatusNotFound, "link_used.html", moderationPage{})
	default:
		h.logger.Error("moderation request failed", "error", err)
		h.render(c, http.StatusInternalServerError, "server_error.html", moderationPage{})
	}
}

func (h *ModerationHandler) render(c *gin.Context, status int, name string, page moderationPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := moderationTemplates.ExecuteTemplate(c.Writer, name, page); err != nil {
		h.logger.Error("failed to render moderation page", "template", name, "error", err)
	}
}
