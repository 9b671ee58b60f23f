package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"io"
	"time"

	"waitlist-service/internal/store"

	"github.com/google/uuid"
)

// Store defines the database operations required by WaitlistProcessor
type Store interface {
	CreateEntry(ctx context.Context, params store.CreateEntryParams) (store.WaitlistEntry, error)
	GetEntryByID(ctx context.Context, id uuid.UUID) (store.WaitlistEntry, error)
	GetEntryByReferralCode(ctx context.Context, code string) (store.WaitlistEntry, error)
	GetEntryByEmail(ctx context.Context, role, email string) (store.WaitlistEntry, error)
	GetLatestEntryByEmail(ctx context.Context, email string) (store.WaitlistEntry, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	CreditReferrer(ctx context.Context, code string, points int) error
	ListRankKeys(ctx context.Context, role string) ([]store.RankKeyRow, bool, error)
	ListEntries(ctx context.Context, filter store.EntryFilter) (store.EntryPage, error)
	StreamEntries(ctx context.Context, filter store.EntryFilter, fn func(store.WaitlistEntry) error) (bool, error)
	UpdateEntryReview(ctx context.Context, params store.UpdateEntryReviewParams) (store.WaitlistEntry, error)
	// Verification codes
	CreateEmailOTP(ctx context.Context, params store.CreateEmailOTPParams) (store.EmailOTP, error)
	GetLatestEmailOTP(ctx context.Context, email string) (store.EmailOTP, error)
	IncrementEmailOTPAttempts(ctx context.Context, id uuid.UUID) (int, error)
	ConsumeEmailOTP(ctx context.Context, id uuid.UUID) error
}

// Mailer sends the transactional emails a signup triggers
type Mailer interface {
	SendSignupConfirmation(ctx context.Context, to, fullName, role, referralLink string) error
	SendVerificationCode(ctx context.Context, to, code string, expiresIn time.Duration) error
}

// CertificateStore keeps uploaded vendor compliance documents
type CertificateStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// RateLimiter throttles verification code requests per key
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
