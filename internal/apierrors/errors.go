package apierrors

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes returned in the "code" field
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInvalidRole         = "INVALID_ROLE"
	CodeConsentRequired     = "CONSENT_REQUIRED"
	CodeTooManySelections   = "TOO_MANY_SELECTIONS"
	CodeInvalidCertificate  = "INVALID_CERTIFICATE"
	CodeInvalidStatus       = "INVALID_REVIEW_STATUS"
	CodeInvalidOverride     = "INVALID_QUEUE_OVERRIDE"
	CodeInvalidFilter       = "INVALID_FILTER"
	CodeInvalidCode         = "INVALID_CODE"
	CodeCaptchaFailed       = "CAPTCHA_FAILED"
	CodeAlreadyOnWaitlist   = "ALREADY_ON_WAITLIST"
	CodeNotFound            = "NOT_FOUND"
	CodeEntryNotFound       = "ENTRY_NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRateLimited         = "RATE_LIMITED"
	CodeUploadsDisabled     = "UPLOADS_DISABLED"
	CodeOverrideDisabled    = "OVERRIDE_UNAVAILABLE"
	CodeEmailServiceError   = "EMAIL_SERVICE_ERROR"
	CodeStorageServiceError = "STORAGE_SERVICE_ERROR"
	CodeCaptchaServiceError = "CAPTCHA_SERVICE_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// APIError is an error with everything needed to answer an HTTP request.
// Err holds the underlying cause and is never sent to untrusted callers.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// BadRequest creates a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// NotFound creates a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// Conflict creates a 409 error
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// TooManyRequests creates a 429 error
func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimited, Message: message}
}

// ServiceUnavailable creates a 503 error that keeps the cause for logging
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError creates a sanitized 500 error - never exposes internal details
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
