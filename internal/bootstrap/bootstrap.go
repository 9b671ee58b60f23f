package bootstrap

import (
	"context"
	"fmt"

	"waitlist-service/internal/clients/bucket"
	"waitlist-service/internal/clients/mail"
	"waitlist-service/internal/clients/redis"
	"waitlist-service/internal/clients/turnstile"
	"waitlist-service/internal/config"
	"waitlist-service/internal/email"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/ratelimit"
	"waitlist-service/internal/store"
	waitlistHandler "waitlist-service/internal/waitlist/handler"
	waitlistProcessor "waitlist-service/internal/waitlist/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   store.Store
	Logger  *observability.Logger
	Metrics *observability.Metrics

	// Handlers
	WaitlistHandler waitlistHandler.Handler

	// Clients (for cleanup)
	RedisClient *redis.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:  logger,
		Metrics: observability.NewMetrics(nil),
	}

	// Initialize database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, cfg.Database.MaxOpenConns, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := deps.Store.Ping(ctx); err != nil {
		deps.Store.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if _, err := deps.Store.Migrate(ctx); err != nil {
			deps.Store.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	// Initialize clients
	mailer := newMailer(ctx, cfg, logger)

	certificates, err := newCertificateStore(ctx, cfg.Storage, logger)
	if err != nil {
		deps.Store.Close()
		return nil, err
	}

	deps.RedisClient, err = redis.NewClient(cfg.Redis, logger)
	if err != nil {
		// Throttling falls back to counting issued codes in PostgreSQL.
		logger.WarnWithError(ctx, "redis unavailable, rate limiting from database", err)
		deps.RedisClient = nil
	}
	limiter := ratelimit.NewService(deps.RedisClient, &deps.Store, logger, cfg.OTP.MaxRequests, cfg.OTP.RequestWindow)

	// Initialize waitlist processor and handler
	waitlistProc := waitlistProcessor.New(
		&deps.Store,
		logger,
		deps.Metrics,
		mailer,
		certificates,
		limiter,
		waitlistProcessor.Options{
			WebAppURI:      cfg.Services.WebAppURI,
			MaxUploadBytes: cfg.Storage.MaxUploadBytes,
			OTPTTL:         cfg.OTP.TTL,
			OTPMaxAttempts: cfg.OTP.MaxAttempts,
		},
	)
	handlerCfg := waitlistHandler.Config{
		AdminSecret:    cfg.Admin.Secret,
		ActorHeader:    cfg.Admin.ActorHeader,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	}
	if captcha := turnstile.NewClient(cfg.Services.TurnstileSecretKey, logger); captcha != nil {
		handlerCfg.Captcha = captcha
	}
	deps.WaitlistHandler = waitlistHandler.New(&waitlistProc, logger, handlerCfg)

	return deps, nil
}

// newMailer returns the email service. Without a Resend key emails are
// logged and dropped.
func newMailer(ctx context.Context, cfg *config.Config, logger *observability.Logger) *email.EmailService {
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		logger.WarnWithError(ctx, "email delivery disabled", err)
		return email.New(nil, cfg.Services.DefaultEmailSender, logger)
	}
	return email.New(mailClient, cfg.Services.DefaultEmailSender, logger)
}

// newCertificateStore returns nil when uploads are not configured so the
// processor reports them as unavailable.
func newCertificateStore(ctx context.Context, cfg config.StorageConfig, logger *observability.Logger) (waitlistProcessor.CertificateStore, error) {
	client, err := bucket.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if err := client.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare certificate bucket: %w", err)
	}
	return client, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
