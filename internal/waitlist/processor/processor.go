package processor

import (
	"errors"
	"time"

	"waitlist-service/internal/observability"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRole           = errors.New("role must be consumer or vendor")
	ErrFullNameRequired      = errors.New("full name is required")
	ErrInvalidEmail          = errors.New("a valid email address is required")
	ErrConsentRequired       = errors.New("consent is required to join the waitlist")
	ErrTooManySelections     = errors.New("at most 3 cuisine selections are allowed")
	ErrCertificateNotAllowed = errors.New("certificates can only be uploaded by vendors")
	ErrInvalidCertificate    = errors.New("certificate must be a PDF, JPEG or PNG within the size limit")
	ErrUploadsDisabled       = errors.New("certificate uploads are not available")
	ErrAlreadyOnWaitlist     = errors.New("this email is already on the waitlist")
	ErrEntryNotFound         = errors.New("waitlist entry not found")
	ErrMissingLookupKey      = errors.New("a referral code or id is required")
	ErrInvalidEntryID        = errors.New("invalid entry id")
	ErrInvalidCode           = errors.New("invalid or expired verification code")
	ErrTooManyCodeRequests   = errors.New("too many verification code requests")
	ErrInvalidFilter         = errors.New("invalid filter")
	ErrInvalidNotes          = errors.New("admin notes must be a string or null")
	ErrOverrideUnavailable   = errors.New("vendor queue override is not available yet")
)

const (
	// maxCuisineSelections bounds the multi-select cuisine answers
	maxCuisineSelections = 3
	// referralCodeAttempts is how many random codes are tried before the
	// timestamp-suffixed fallback is used
	referralCodeAttempts = 5
	// insertAttempts bounds retries when a code is taken between the
	// existence check and the insert
	insertAttempts = 3

	defaultPageSize = 50
	maxPageSize     = 200
)

// validate backs the email check shared by signup and verification codes
var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// cuisineAnswerKeys are the multi-select answers limited to three items
var cuisineAnswerKeys = []string{"cuisine", "cuisines", "cuisine_types"}

// allowedCertificateTypes maps accepted content types to object key extensions
var allowedCertificateTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// Options are the tunables WaitlistProcessor reads from configuration
type Options struct {
	WebAppURI      string
	MaxUploadBytes int64
	OTPTTL         time.Duration
	OTPMaxAttempts int
}

type WaitlistProcessor struct {
	store        Store
	logger       *observability.Logger
	metrics      *observability.Metrics
	mailer       Mailer
	certificates CertificateStore
	limiter      RateLimiter
	opts         Options
	now          func() time.Time
}

// New creates a WaitlistProcessor. certificates may be nil when uploads are
// not configured, and limiter may be nil to disable code request throttling.
func New(store Store, logger *observability.Logger, metrics *observability.Metrics, mailer Mailer, certificates CertificateStore, limiter RateLimiter, opts Options) WaitlistProcessor {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	if opts.OTPMaxAttempts <= 0 {
		opts.OTPMaxAttempts = 5
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return WaitlistProcessor{
		store:        store,
		logger:       logger,
		metrics:      metrics,
		mailer:       mailer,
		certificates: certificates,
		limiter:      limiter,
		opts:         opts,
		now:          time.Now,
	}
}
