package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "company not found",
			err:        shared.ErrCompanyNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "COMPANY_NOT_FOUND",
		},
		{
			name:       "self approval is forbidden",
			err:        shared.ErrSelfApproval,
			wantStatus: http.StatusForbidden,
			wantCode:   "SELF_APPROVAL",
		},
		{
			name:       "category in use conflicts",
			err:        shared.NewDomainError("CATEGORY_IN_USE", "Category has natures"),
			wantStatus: http.StatusConflict,
			wantCode:   "CATEGORY_IN_USE",
		},
		{
			name:       "payment linkage is unprocessable",
			err:        shared.NewDomainError("ORPHAN_PAYMENT", "Payment must reference a document"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "ORPHAN_PAYMENT",
		},
		{
			name:       "unknown validation code is a bad request",
			err:        shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "plain error is internal",
			err:        errors.New("driver: bad connection"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := newTestContext(t)

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			resp := decodeResponse(t, recorder)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_DoesNotLeakInternalMessage(t *testing.T) {
	c, recorder := newTestContext(t)

	h := &BaseHandler{}
	h.HandleError(c, errors.New("pq: password authentication failed"))

	resp := decodeResponse(t, recorder)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "password")
}

func TestBaseHandler_Success(t *testing.T) {
	c, recorder := newTestContext(t)

	h := &BaseHandler{}
	h.Success(c, gin.H{"pending": true})

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}
