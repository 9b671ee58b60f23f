package apierrors

import (
	"errors"
	"net/http"

	"waitlist-service/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Package-level logger that uses context for observability
var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error  string `json:"error"`            // User-friendly error message
	Code   string `json:"code,omitempty"`   // Machine-readable error code
	Detail string `json:"detail,omitempty"` // Raw cause, admin responses only
}

// RespondWithError converts err to an APIError, logs the response for
// correlation with the processor's own error log, and writes a sanitized body.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	respondWithError(c, err, false)
}

// RespondWithAdminError behaves like RespondWithError but includes the raw
// cause of server errors in "detail". Only use it behind admin auth.
func RespondWithAdminError(c *gin.Context, err error) {
	respondWithError(c, err, true)
}

func respondWithError(c *gin.Context, err error, trusted bool) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	apiErr := MapError(err)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError && apiErr.Err != nil {
		logger.Error(ctx, "API error response", apiErr.Err)
	} else {
		logger.Info(ctx, "API error response")
	}

	resp := ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	}
	if trusted && apiErr.StatusCode >= http.StatusInternalServerError && apiErr.Err != nil {
		resp.Detail = apiErr.Err.Error()
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, resp)
}

// RespondWithValidationError handles Gin binding/validation errors and returns
// structured validation error responses.
//
//	var req SomeRequest
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    apierrors.RespondWithValidationError(c, err)
//	    return
//	}
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		apiErr := ValidationError(validationErrs)
		logger.InfoWithError(ctx, "validation failed", err)
		c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
			Error: apiErr.Message,
			Code:  apiErr.Code,
		})
		return
	}

	// Not a validation error - might be a JSON parsing error or other binding issue
	logger.InfoWithError(ctx, "request binding failed", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request format. Please check your JSON syntax.",
		Code:  CodeInvalidInput,
	})
}
