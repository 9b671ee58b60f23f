package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"waitlist-service/internal/clients/turnstile"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/processor"
	"waitlist-service/internal/waitlist/queue"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid role", processor.ErrInvalidRole, http.StatusBadRequest, CodeInvalidRole},
		{"consent", processor.ErrConsentRequired, http.StatusBadRequest, CodeConsentRequired},
		{"selections", processor.ErrTooManySelections, http.StatusBadRequest, CodeTooManySelections},
		{"duplicate", processor.ErrAlreadyOnWaitlist, http.StatusConflict, CodeAlreadyOnWaitlist},
		{"store duplicate", store.ErrDuplicateEntry, http.StatusConflict, CodeAlreadyOnWaitlist},
		{"not found", processor.ErrEntryNotFound, http.StatusNotFound, CodeEntryNotFound},
		{"wrapped review status", fmt.Errorf("update: %w", queue.ErrInvalidReviewStatus), http.StatusBadRequest, CodeInvalidStatus},
		{"override", queue.ErrInvalidQueueOverride, http.StatusBadRequest, CodeInvalidOverride},
		{"filter", fmt.Errorf("%w: unknown role", processor.ErrInvalidFilter), http.StatusBadRequest, CodeInvalidFilter},
		{"code", processor.ErrInvalidCode, http.StatusBadRequest, CodeInvalidCode},
		{"rate limit", processor.ErrTooManyCodeRequests, http.StatusTooManyRequests, CodeRateLimited},
		{"uploads", processor.ErrUploadsDisabled, http.StatusServiceUnavailable, CodeUploadsDisabled},
		{"override column", processor.ErrOverrideUnavailable, http.StatusServiceUnavailable, CodeOverrideDisabled},
		{"email service", errors.New("resend: 502 bad gateway"), http.StatusServiceUnavailable, CodeEmailServiceError},
		{"captcha", turnstile.ErrVerificationFail, http.StatusBadRequest, CodeCaptchaFailed},
		{"captcha service", errors.New("captcha service: unexpected status 502"), http.StatusServiceUnavailable, CodeCaptchaServiceError},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}

	assert.Nil(t, MapError(nil))

	custom := Unauthorized("nope")
	assert.Same(t, custom, MapError(fmt.Errorf("wrapped: %w", custom)))
}

func TestInternalErrorIsSanitized(t *testing.T) {
	apiErr := MapError(errors.New("relation \"secret_table\" does not exist"))
	assert.NotContains(t, apiErr.Message, "secret_table")
	assert.ErrorContains(t, apiErr, "secret_table")
}

func respond(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondWithError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")

	w, body := respond(t, func(c *gin.Context) { RespondWithError(c, cause) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternal, body.Code)
	assert.Empty(t, body.Detail)

	w, body = respond(t, func(c *gin.Context) { RespondWithAdminError(c, cause) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, cause.Error(), body.Detail)

	w, body = respond(t, func(c *gin.Context) { RespondWithAdminError(c, processor.ErrEntryNotFound) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, body.Detail)
}

type signupForm struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
}

func TestRespondWithValidationError(t *testing.T) {
	err := validator.New().Struct(signupForm{Email: "nope"})
	require.Error(t, err)

	w, body := respond(t, func(c *gin.Context) { RespondWithValidationError(c, err) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidInput, body.Code)
	assert.Contains(t, body.Error, "Email must be a valid email address")
	assert.Contains(t, body.Error, "FullName is required")

	w, body = respond(t, func(c *gin.Context) { RespondWithValidationError(c, errors.New("unexpected EOF")) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format. Please check your JSON syntax.", body.Error)
}
