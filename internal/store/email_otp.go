package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateEmailOTPParams represents parameters for issuing a verification code
type CreateEmailOTPParams struct {
	Email     string
	CodeHash  string
	ExpiresAt time.Time
}

const sqlInvalidateEmailOTPs = `
UPDATE email_otps
SET consumed_at = NOW()
WHERE lower(email) = lower($1) AND consumed_at IS NULL
`

const sqlCreateEmailOTP = `
INSERT INTO email_otps (email, code_hash, expires_at)
VALUES ($1, $2, $3)
RETURNING id, email, code_hash, attempts, expires_at, consumed_at, created_at
`

// CreateEmailOTP stores a new code for email and invalidates any earlier
// unconsumed codes in the same transaction.
func (s *Store) CreateEmailOTP(ctx context.Context, params CreateEmailOTPParams) (EmailOTP, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return EmailOTP{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqlInvalidateEmailOTPs, params.Email); err != nil {
		return EmailOTP{}, fmt.Errorf("failed to invalidate email otps: %w", err)
	}

	var otp EmailOTP
	if err := tx.GetContext(ctx, &otp, sqlCreateEmailOTP, params.Email, params.CodeHash, params.ExpiresAt); err != nil {
		return EmailOTP{}, fmt.Errorf("failed to create email otp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return EmailOTP{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return otp, nil
}

const sqlGetLatestEmailOTP = `
SELECT id, email, code_hash, attempts, expires_at, consumed_at, created_at
FROM email_otps
WHERE lower(email) = lower($1) AND consumed_at IS NULL
ORDER BY created_at DESC
LIMIT 1
`

// GetLatestEmailOTP returns the newest unconsumed code for email. Expiry and
// attempt limits are left to the caller.
func (s *Store) GetLatestEmailOTP(ctx context.Context, email string) (EmailOTP, error) {
	var otp EmailOTP
	err := s.db.GetContext(ctx, &otp, sqlGetLatestEmailOTP, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailOTP{}, ErrNotFound
		}
		return EmailOTP{}, fmt.Errorf("failed to get email otp: %w", err)
	}
	return otp, nil
}

const sqlIncrementEmailOTPAttempts = `
UPDATE email_otps
SET attempts = attempts + 1
WHERE id = $1
RETURNING attempts
`

// IncrementEmailOTPAttempts records a failed guess and returns the new count
func (s *Store) IncrementEmailOTPAttempts(ctx context.Context, id uuid.UUID) (int, error) {
	var attempts int
	err := s.db.GetContext(ctx, &attempts, sqlIncrementEmailOTPAttempts, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment email otp attempts: %w", err)
	}
	return attempts, nil
}

const sqlConsumeEmailOTP = `
UPDATE email_otps
SET consumed_at = NOW()
WHERE id = $1 AND consumed_at IS NULL
`

// ConsumeEmailOTP marks a code used. It returns ErrNotFound if the code was
// already consumed, so a code can only succeed once.
func (s *Store) ConsumeEmailOTP(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, sqlConsumeEmailOTP, id)
	if err != nil {
		return fmt.Errorf("failed to consume email otp: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to consume email otp: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlCountEmailOTPsSince = `
SELECT COUNT(*) FROM email_otps
WHERE lower(email) = lower($1) AND created_at >= $2
`

// CountEmailOTPsSince counts codes issued to email since the given time
func (s *Store) CountEmailOTPsSince(ctx context.Context, email string, since time.Time) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountEmailOTPsSince, email, since); err != nil {
		return 0, fmt.Errorf("failed to count email otps: %w", err)
	}
	return count, nil
}
