package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campus-election/internal/app/models"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
	"github.com/yigit/campus-election/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantReason string
	}{
		{"not found", apperrors.NewResourceNotFoundError("election not found"), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"validation", apperrors.NewValidationError("title cannot be empty"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, ""},
		{"live election", apperrors.NewConflictError(apperrors.CodeLiveElectionExists, "busy"), http.StatusConflict, dto.ErrorCodeResourceConflict, apperrors.CodeLiveElectionExists},
		{"invalid transition", apperrors.NewConflictError(apperrors.CodeInvalidTransition, "no"), http.StatusConflict, dto.ErrorCodeResourceConflict, apperrors.CodeInvalidTransition},
		{"not active", apperrors.ErrElectionNotActive, http.StatusConflict, dto.ErrorCodeElectionNotActive, ""},
		{"position", apperrors.ErrPositionNotFound, http.StatusNotFound, dto.ErrorCodePositionNotFound, ""},
		{"not on ballot", apperrors.ErrCandidateNotOnBallot, http.StatusUnprocessableEntity, dto.ErrorCodeCandidateNotOnBallot, ""},
		{"duplicate", apperrors.ErrDuplicateVote, http.StatusConflict, dto.ErrorCodeDuplicateVote, ""},
		{"limit", &apperrors.VoteLimitError{PositionID: 1, Limit: 2, TotalAfter: 3}, http.StatusConflict, dto.ErrorCodeVoteLimitExceeded, ""},
		{"storage", apperrors.NewStorageError("insert vote", errors.New("conn reset")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
		{"forbidden", apperrors.NewForbiddenError("admins only"), http.StatusForbidden, dto.ErrorCodeForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantReason, resp.Error.Reason)
		})
	}
}

func TestHandleAPIError_HidesStorageCause(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.NewStorageError("insert vote", errors.New("password authentication failed")))

	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandleAPIError_VoteLimitDetails(t *testing.T) {
	_, detail := ErrorDetailFor(&apperrors.VoteLimitError{PositionID: 4, Limit: 2, TotalAfter: 3})
	assert.Equal(t, map[string]interface{}{"positionId": int64(4), "limit": 2, "totalAfter": 3}, detail.Details)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	whoami := func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		role, _ := c.Get(ContextRoleType)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	}
	router.GET("/any", m.JWTAuth(), whoami)
	router.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), whoami)
	return router, jwtService
}

func TestJWTAuth(t *testing.T) {
	router, jwtService := newAuthRouter(t)
	voterToken, _, err := jwtService.GenerateToken(7, "20260007", models.RoleVoter)
	require.NoError(t, err)
	adminToken, _, err := jwtService.GenerateToken(1, "", models.RoleAdmin)
	require.NoError(t, err)
	expired, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: -time.Minute, TokenIssuer: "test"}).
		GenerateToken(7, "", models.RoleVoter)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"missing token", "/any", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"malformed header", "/any", "Bearer nope", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"expired", "/any", "Bearer " + expired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"voter on open route", "/any", "Bearer " + voterToken, http.StatusOK, ""},
		{"voter on admin route", "/admin", "Bearer " + voterToken, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"admin on admin route", "/admin", "Bearer " + adminToken, http.StatusOK, ""},
		{"query token", "/any?token=" + voterToken, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w).Error.Code)
			}
		})
	}
}

func TestJWTAuth_SetsIdentity(t *testing.T) {
	router, jwtService := newAuthRouter(t)
	token, _, err := jwtService.GenerateToken(7, "20260007", models.RoleVoter)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "VOTER", body["role"])
}
