package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aitoolbox/gatekeeper/internal/account/domain"
	"github.com/aitoolbox/gatekeeper/internal/account/usecase"
)

// MockProfileUseCase is a mock implementation of usecase.UseCase
type MockProfileUseCase struct {
	mock.Mock
}

func (m *MockProfileUseCase) Register(
	ctx context.Context,
	input usecase.RegisterProfileInput,
) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileUseCase) Moderate(
	ctx context.Context,
	token, rawAction string,
) (*usecase.ModerationResult, error) {
	args := m.Called(ctx, token, rawAction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ModerationResult), args.Error(1)
}

func (m *MockProfileUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileUseCase) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Profile, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Profile), args.Error(1)
}

func (m *MockProfileUseCase) SetStatus(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Profile, error) {
	args := m.Called(ctx, id, rawAction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupModerationHandler(t *testing.T) (*ModerationHandler, *MockProfileUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	mockUseCase := &MockProfileUseCase{}
	return NewModerationHandler(mockUseCase, testLogger()), mockUseCase
}

func moderationRequest(handler *ModerationHandler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	handler.ModerateHandler(c)
	return w
}

func TestModerationHandler_Approve(t *testing.T) {
	handler, mockUseCase := setupModerationHandler(t)

	mockUseCase.On("Moderate", mock.Anything, "tok-abc", "approve").Return(&usecase.ModerationResult{
		Profile: &domain.Profile{FullName: "Maria Petrova", Status: domain.StatusApproved},
		Action:  domain.ActionApprove,
	}, nil)

	w := moderationRequest(handler, "/moderation?token=tok-abc&action=approve")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Account approved")
	assert.Contains(t, w.Body.String(), "Maria Petrova")
}

func TestModerationHandler_Reject(t *testing.T) {
	handler, mockUseCase := setupModerationHandler(t)

	mockUseCase.On("Moderate", mock.Anything, "tok-abc", "reject").Return(&usecase.ModerationResult{
		Profile: &domain.Profile{FullName: "Maria Petrova", Status: domain.StatusRejected},
		Action:  domain.ActionReject,
	}, nil)

	w := moderationRequest(handler, "/moderation?token=tok-abc&action=reject")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Registration rejected")
}

func TestModerationHandler_InvalidRequests(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		token   string
		action  string
		mockErr error
	}{
		{"missing token", "/moderation?action=approve", "", "approve", domain.ErrMissingToken},
		{"missing action", "/moderation?token=tok-abc", "tok-abc", "", domain.ErrMissingAction},
		{"unknown action", "/moderation?token=tok-abc&action=promote", "tok-abc", "promote", domain.ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockUseCase := setupModerationHandler(t)
			mockUseCase.On("Moderate", mock.Anything, tt.token, tt.action).Return(nil, tt.mockErr)

			w := moderationRequest(handler, tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid moderation link")
		})
	}
}

func TestModerationHandler_TokenNotFoundOrConsumed(t *testing.T) {
	handler, mockUseCase := setupModerationHandler(t)

	mockUseCase.On("Moderate", mock.Anything, "stale", "approve").
		Return(nil, domain.ErrTokenNotFoundOrConsumed)

	w := moderationRequest(handler, "/moderation?token=stale&action=approve")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "already been used")
}

func TestModerationHandler_InternalError(t *testing.T) {
	handler, mockUseCase := setupModerationHandler(t)

	mockUseCase.On("Moderate", mock.Anything, "tok-abc", "approve").
		Return(nil, assert.AnError)

	w := moderationRequest(handler, "/moderation?token=tok-abc&action=approve")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.Contains(t, w.Body.String(), "was not changed")
}
