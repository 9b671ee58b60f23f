package ratelimit

import (
	"context"
	"time"

	"waitlist-service/internal/clients/redis"
	"waitlist-service/internal/observability"
	"waitlist-service/internal/waitlist/utils"
)

// WindowCounter records hits in a shared sliding window
type WindowCounter interface {
	SlidingWindowHit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error)
}

// CodeCounter counts verification codes already issued to an email
type CodeCounter interface {
	CountEmailOTPsSince(ctx context.Context, email string, since time.Time) (int, error)
}

// Service throttles verification code requests per email address
type Service struct {
	window WindowCounter
	store  CodeCounter
	logger *observability.Logger
	limit  int
	period time.Duration
	now    func() time.Time
}

// NewService creates a rate limiter allowing limit requests per period.
// Redis is used when available; otherwise issued codes are counted in
// PostgreSQL.
func NewService(redisClient *redis.Client, store CodeCounter, logger *observability.Logger, limit int, period time.Duration) *Service {
	s := &Service{
		store:  store,
		logger: logger,
		limit:  limit,
		period: period,
		now:    time.Now,
	}
	if redisClient.IsEnabled() {
		s.window = redisClient
	}
	return s
}

// Allow reports whether another code may be sent to email
func (s *Service) Allow(ctx context.Context, email string) (bool, error) {
	if s.limit <= 0 {
		return true, nil
	}
	email = utils.NormalizeEmail(email)
	now := s.now()

	// Try Redis-based rate limiting first (preferred for performance)
	if s.window != nil {
		count, err := s.window.SlidingWindowHit(ctx, "rl:otp:"+email, now, s.period)
		if err == nil {
			return count <= int64(s.limit), nil
		}
		s.logger.WarnWithError(ctx, "Redis rate limit check failed, falling back to PostgreSQL", err)
	}

	count, err := s.store.CountEmailOTPsSince(ctx, email, now.Add(-s.period))
	if err != nil {
		return false, err
	}
	return count < s.limit, nil
}
