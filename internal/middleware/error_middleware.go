package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campus-election/internal/app/models/dto"
	"github.com/yigit/campus-election/internal/pkg/apperrors"
	"github.com/yigit/campus-election/internal/pkg/logger"
)

// kindMapping is the HTTP status and public code of one error kind
type kindMapping struct {
	status int
	code   dto.ErrorCode
}

var kindMappings = map[string]kindMapping{
	apperrors.KindConflict:             {http.StatusConflict, dto.ErrorCodeResourceConflict},
	apperrors.KindElectionNotActive:    {http.StatusConflict, dto.ErrorCodeElectionNotActive},
	apperrors.KindPositionNotFound:     {http.StatusNotFound, dto.ErrorCodePositionNotFound},
	apperrors.KindDuplicateVote:        {http.StatusConflict, dto.ErrorCodeDuplicateVote},
	apperrors.KindVoteLimitExceeded:    {http.StatusConflict, dto.ErrorCodeVoteLimitExceeded},
	apperrors.KindCandidateNotOnBallot: {http.StatusUnprocessableEntity, dto.ErrorCodeCandidateNotOnBallot},
	apperrors.KindNotFound:             {http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	apperrors.KindValidation:           {http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	apperrors.KindStorage:              {http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
}

// StatusForKind returns the HTTP status and public code of an error kind name
func StatusForKind(kind string) (int, dto.ErrorCode) {
	if m, ok := kindMappings[kind]; ok {
		return m.status, m.code
	}
	return http.StatusInternalServerError, dto.ErrorCodeInternalServer
}

// ErrorDetailFor converts an application error into its HTTP status and error detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	}

	kind := apperrors.Kind(err)
	status, code := StatusForKind(kind)
	if status >= http.StatusInternalServerError {
		// Storage and internal failures never leak driver messages
		message := "Internal server error"
		if kind == apperrors.KindStorage {
			message = "Storage unavailable"
		}
		return status, dto.NewErrorDetail(code, message)
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if reason := apperrors.CodeOf(err); reason != "" {
		detail = detail.WithReason(reason)
	}

	var limitErr *apperrors.VoteLimitError
	if errors.As(err, &limitErr) {
		detail = detail.WithDetails(map[string]interface{}{
			"positionId": limitErr.PositionID,
			"limit":      limitErr.Limit,
			"totalAfter": limitErr.TotalAfter,
		})
	}

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Details != nil {
		detail = detail.WithDetails(customErr.Details)
	}
	return status, detail
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}
