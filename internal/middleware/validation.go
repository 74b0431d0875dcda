package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/campus-election/internal/app/models/dto"
)

// BindJSON binds and validates a request body, answering 400 on failure.
// It reports whether the handler may continue.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			errs := dto.NewValidationErrors()
			for _, fe := range validationErrs {
				errs.AddError(fe.Field(), formatValidationError(fe))
			}
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed")
			errorDetail = errorDetail.WithDetails(errs.Errors)
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return false
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// ParseIDParam reads a positive int64 path parameter, answering 400 when it is malformed
func ParseIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithField(name).WithDetails(label + " ID must be a positive number")
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
