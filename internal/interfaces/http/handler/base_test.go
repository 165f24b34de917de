package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturehub/backend/internal/domain/shared"
	"github.com/venturehub/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("from header when context empty", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext(t)
		assert.Empty(t, getRequestID(c))
	})
}

func TestGetActorID(t *testing.T) {
	t.Run("absent header yields nil", func(t *testing.T) {
		c, _ := newTestContext(t)
		actorID, err := getActorID(c)
		require.NoError(t, err)
		assert.Nil(t, actorID)
	})

	t.Run("valid header parses", func(t *testing.T) {
		c, _ := newTestContext(t)
		id := uuid.New()
		c.Request.Header.Set("X-Actor-ID", id.String())
		actorID, err := getActorID(c)
		require.NoError(t, err)
		require.NotNil(t, actorID)
		assert.Equal(t, id, *actorID)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Actor-ID", "not-a-uuid")
		_, err := getActorID(c)
		assert.Error(t, err)
	})
}

func TestParseListFilter(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(t)
		filter, err := parseListFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.PageSize)
		assert.Equal(t, "created_at", filter.OrderBy)
		assert.Equal(t, "desc", filter.OrderDir)
	})

	t.Run("query parameters override", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?page=3&page_size=50&order_by=name&order_dir=asc", nil)
		filter, err := parseListFilter(c)
		require.NoError(t, err)
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 50, filter.PageSize)
		assert.Equal(t, "name", filter.OrderBy)
		assert.Equal(t, "asc", filter.OrderDir)
	})

	t.Run("page size cap enforced", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest("GET", "/?page_size=1000", nil)
		_, err := parseListFilter(c)
		assert.Error(t, err)
	})
}

func TestHandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "insufficient stock",
			err:            shared.NewInsufficientStockError(5, 2),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInsufficientStock,
		},
		{
			name:           "invalid transition",
			err:            shared.NewInvalidTransitionError(shared.EntityTypeOrder, "PENDING", "DELIVERED"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeInvalidTransition,
		},
		{
			name:           "concurrency conflict",
			err:            shared.ErrConcurrencyConflict,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConcurrencyConflict,
		},
		{
			name:           "session conflict",
			err:            shared.ErrSessionConflict,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeSessionConflict,
		},
		{
			name:           "unknown error becomes internal",
			err:            errors.New("database exploded"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			c.Set("request_id", "req-123")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Equal(t, "req-123", resp.Error.RequestID)
		})
	}

	t.Run("internal error hides the cause", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleDomainError(c, errors.New("password=hunter2"))
		resp := decodeResponse(t, w)
		assert.NotContains(t, resp.Error.Message, "hunter2")
	})
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
