package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aitoolbox/gatekeeper/internal/catalog/domain"
	"github.com/aitoolbox/gatekeeper/internal/catalog/http/dto"
	"github.com/aitoolbox/gatekeeper/internal/catalog/usecase"
)

// MockEntryUseCase is a mock implementation of usecase.UseCase
type MockEntryUseCase struct {
	mock.Mock
}

func (m *MockEntryUseCase) Submit(
	ctx context.Context,
	input usecase.SubmitEntryInput,
) (*domain.Entry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryUseCase) ListApproved(
	ctx context.Context,
	category string,
	offset, limit int,
) ([]*domain.Entry, error) {
	args := m.Called(ctx, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryUseCase) ListPending(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Entry, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

func (m *MockEntryUseCase) Moderate(
	ctx context.Context,
	id uuid.UUID,
	rawAction string,
) (*domain.Entry, error) {
	args := m.Called(ctx, id, rawAction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func setupEntryHandler(t *testing.T) (*EntryHandler, *MockEntryUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	mockUseCase := &MockEntryUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEntryHandler(mockUseCase, logger), mockUseCase
}

func jsonRequest(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func TestEntryHandler_SubmitHandler(t *testing.T) {
	handler, mockUseCase := setupEntryHandler(t)

	request := dto.SubmitEntryRequest{
		Name:        "PromptPilot",
		Category:    "writing",
		Role:        "copywriter",
		Description: "Drafts and rewrites marketing copy.",
		Pricing:     "freemium",
		SubmittedBy: "maria@example.com",
	}
	created := &domain.Entry{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        "PromptPilot",
		Category:    "writing",
		Pricing:     domain.PricingFreemium,
		SubmittedBy: "maria@example.com",
		Status:      domain.StatusPending,
	}
	mockUseCase.On("Submit", mock.Anything, dto.ToSubmitEntryInput(request)).Return(created, nil)

	c, w := jsonRequest(t, http.MethodPost, "/v1/catalog", request)
	handler.SubmitHandler(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.EntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PENDING", response.Status)
	assert.Nil(t, response.URL)
}

func TestEntryHandler_ListApprovedHandler(t *testing.T) {
	handler, mockUseCase := setupEntryHandler(t)

	entries := []*domain.Entry{
		{ID: uuid.Must(uuid.NewV7()), Name: "PromptPilot", Status: domain.StatusApproved},
	}
	mockUseCase.On("ListApproved", mock.Anything, "writing", 0, 50).Return(entries, nil)

	c, w := jsonRequest(t, http.MethodGet, "/v1/catalog?category=writing", nil)
	handler.ListApprovedHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListEntriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Entries, 1)
}

func TestEntryHandler_ModerateHandler(t *testing.T) {
	handler, mockUseCase := setupEntryHandler(t)
	id := uuid.Must(uuid.NewV7())

	approved := &domain.Entry{ID: id, Name: "PromptPilot", Status: domain.StatusApproved}
	mockUseCase.On("Moderate", mock.Anything, id, "approve").Return(approved, nil)

	c, w := jsonRequest(t, http.MethodPost, "/v1/catalog/"+id.String()+"/status",
		dto.ModerateEntryRequest{Action: "approve"})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	handler.ModerateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.EntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "APPROVED", response.Status)
}

func TestEntryHandler_ModerateHandler_AlreadyProcessed(t *testing.T) {
	handler, mockUseCase := setupEntryHandler(t)
	id := uuid.Must(uuid.NewV7())

	mockUseCase.On("Moderate", mock.Anything, id, "reject").
		Return(nil, domain.ErrEntryAlreadyProcessed)

	c, w := jsonRequest(t, http.MethodPost, "/v1/catalog/"+id.String()+"/status",
		dto.ModerateEntryRequest{Action: "reject"})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	handler.ModerateHandler(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEntryHandler_ModerateHandler_InvalidID(t *testing.T) {
	handler, _ := setupEntryHandler(t)

	c, w := jsonRequest(t, http.MethodPost, "/v1/catalog/nope/status",
		dto.ModerateEntryRequest{Action: "approve"})
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	handler.ModerateHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
