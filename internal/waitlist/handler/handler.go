package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"time"

	"waitlist-service/internal/apierrors"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/waitlist/processor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WaitlistService is the processor surface the HTTP layer depends on
type WaitlistService interface {
	Signup(ctx context.Context, req processor.SignupRequest) (processor.SignupResponse, error)
	GetStatus(ctx context.Context, lookup processor.StatusLookup) (processor.StatusResponse, error)
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, req processor.VerifyCodeRequest) (processor.StatusResponse, error)
	ListEntries(ctx context.Context, req processor.ListEntriesRequest) (processor.ListEntriesResponse, error)
	GetEntry(ctx context.Context, id uuid.UUID) (processor.EntryView, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req processor.UpdateEntryRequest, actor string) (processor.EntryView, error)
	ExportEntries(ctx context.Context, role string, fn func(processor.EntryView) error) (bool, error)
}

// CaptchaVerifier checks a bot-protection token from a public form
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Config holds the handler settings read from configuration. Captcha may be
// nil to accept public submissions without a token.
type Config struct {
	AdminSecret    string
	ActorHeader    string
	MaxUploadBytes int64
	Captcha        CaptchaVerifier
}

const (
	defaultActorHeader = "X-Admin-Actor"
	defaultActor       = "admin"
	adminSecretHeader  = "X-Admin-Secret"
	actorContextKey    = "Admin-Actor"

	// multipartOverhead leaves room for the payload field and part headers
	multipartOverhead = 1 << 20
)

type Handler struct {
	processor WaitlistService
	logger    *observability.Logger
	cfg       Config
	now       func() time.Time
}

func New(processor WaitlistService, logger *observability.Logger, cfg Config) Handler {
	if cfg.ActorHeader == "" {
		cfg.ActorHeader = defaultActorHeader
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	return Handler{
		processor: processor,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// verifyCaptcha writes an error response and returns false when a captcha
// is configured and token does not pass it.
func (h *Handler) verifyCaptcha(c *gin.Context, token string) bool {
	if h.cfg.Captcha == nil {
		return true
	}
	if err := h.cfg.Captcha.Verify(c.Request.Context(), token, observability.GetRealClientIP(c)); err != nil {
		apierrors.RespondWithError(c, err)
		return false
	}
	return true
}
