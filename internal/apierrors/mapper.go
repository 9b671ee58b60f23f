package apierrors

import (
	"errors"
	"strings"

	"waitlist-service/internal/clients/turnstile"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/processor"
	"waitlist-service/internal/waitlist/queue"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Signup validation
	case errors.Is(err, processor.ErrInvalidRole), errors.Is(err, queue.ErrInvalidRole):
		return BadRequest(CodeInvalidRole, "Role must be consumer or vendor")

	case errors.Is(err, processor.ErrFullNameRequired):
		return BadRequest(CodeInvalidInput, "Full name is required")

	case errors.Is(err, processor.ErrInvalidEmail):
		return BadRequest(CodeInvalidInput, "A valid email address is required")

	case errors.Is(err, processor.ErrConsentRequired):
		return BadRequest(CodeConsentRequired, "Consent is required to join the waitlist")

	case errors.Is(err, processor.ErrTooManySelections):
		return BadRequest(CodeTooManySelections, "Choose at most 3 cuisines")

	case errors.Is(err, processor.ErrCertificateNotAllowed):
		return BadRequest(CodeInvalidCertificate, "Only vendors can upload a certificate")

	case errors.Is(err, processor.ErrInvalidCertificate):
		return BadRequest(CodeInvalidCertificate, "Certificate must be a PDF, JPEG or PNG within the size limit")

	case errors.Is(err, processor.ErrUploadsDisabled):
		return ServiceUnavailable(CodeUploadsDisabled, "Certificate uploads are not available right now", err)

	case errors.Is(err, processor.ErrAlreadyOnWaitlist), errors.Is(err, store.ErrDuplicateEntry):
		return Conflict(CodeAlreadyOnWaitlist, "This email is already on the waitlist")

	case errors.Is(err, turnstile.ErrMissingToken), errors.Is(err, turnstile.ErrVerificationFail):
		return BadRequest(CodeCaptchaFailed, "Captcha verification failed. Please try again.")

	// Lookups
	case errors.Is(err, processor.ErrMissingLookupKey):
		return BadRequest(CodeInvalidInput, "Provide a referral code or id")

	case errors.Is(err, processor.ErrInvalidEntryID):
		return BadRequest(CodeInvalidInput, "Invalid entry id")

	case errors.Is(err, processor.ErrEntryNotFound):
		return NotFound(CodeEntryNotFound, "Waitlist entry not found")

	// Verification codes
	case errors.Is(err, processor.ErrInvalidCode):
		return BadRequest(CodeInvalidCode, "Invalid or expired verification code")

	case errors.Is(err, processor.ErrTooManyCodeRequests):
		return TooManyRequests("Too many verification code requests. Please try again later.")

	// Admin
	case errors.Is(err, processor.ErrInvalidFilter):
		return BadRequest(CodeInvalidFilter, err.Error())

	case errors.Is(err, queue.ErrInvalidReviewStatus):
		return BadRequest(CodeInvalidStatus, "review_status must be one of: pending, reviewed, approved, rejected")

	case errors.Is(err, queue.ErrInvalidQueueOverride):
		return BadRequest(CodeInvalidOverride, "vendor_queue_override must be a whole number or null")

	case errors.Is(err, processor.ErrInvalidNotes):
		return BadRequest(CodeInvalidInput, "admin_notes must be a string or null")

	case errors.Is(err, processor.ErrOverrideUnavailable):
		return ServiceUnavailable(CodeOverrideDisabled, "Vendor queue override is not available until the database is migrated", err)

	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "resend") || strings.Contains(errMsg, "email service") {
		return ServiceUnavailable(
			CodeEmailServiceError,
			"Email service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "certificate storage") {
		return ServiceUnavailable(
			CodeStorageServiceError,
			"File storage is temporarily unavailable. Please try again later.",
			err,
		)
	}

	if strings.Contains(errMsg, "captcha service") {
		return ServiceUnavailable(
			CodeCaptchaServiceError,
			"Captcha verification is temporarily unavailable. Please try again later.",
			err,
		)
	}

	return InternalError(err)
}
