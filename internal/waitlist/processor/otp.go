package processor

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"waitlist-service/internal/observability"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/queue"
	"waitlist-service/internal/waitlist/utils"

	"golang.org/x/crypto/bcrypt"
)

const otpDigits = 6

// VerifyCodeRequest carries a submitted verification code
type VerifyCodeRequest struct {
	Email string
	Code  string
	// Role picks the entry when an email is on both queues; when empty the
	// most recent entry is used.
	Role string
}

// RequestCode emails a fresh verification code. It succeeds whether or not
// the address is on the waitlist.
func (p *WaitlistProcessor) RequestCode(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	if p.limiter != nil {
		allowed, err := p.limiter.Allow(ctx, email)
		if err != nil {
			p.logger.Error(ctx, "failed to check verification code rate limit", err)
			return err
		}
		if !allowed {
			return ErrTooManyCodeRequests
		}
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}

	_, err = p.store.CreateEmailOTP(ctx, store.CreateEmailOTPParams{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: p.now().Add(p.opts.OTPTTL),
	})
	if err != nil {
		p.logger.Error(ctx, "failed to store verification code", err)
		return err
	}

	if err := p.mailer.SendVerificationCode(ctx, email, code, p.opts.OTPTTL); err != nil {
		p.logger.Error(ctx, "failed to send verification code", err)
		return err
	}
	p.metrics.OTPSent()
	p.logger.Info(ctx, "verification code sent")
	return nil
}

// VerifyCode checks a code and returns the status of the verified entry
func (p *WaitlistProcessor) VerifyCode(ctx context.Context, req VerifyCodeRequest) (StatusResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	code := strings.TrimSpace(req.Code)
	if !validEmail(email) {
		return StatusResponse{}, ErrInvalidEmail
	}
	var role queue.Role
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := queue.ParseRole(req.Role)
		if err != nil {
			return StatusResponse{}, ErrInvalidRole
		}
		role = parsed
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	otp, err := p.store.GetLatestEmailOTP(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, ErrInvalidCode
		}
		p.logger.Error(ctx, "failed to get verification code", err)
		return StatusResponse{}, err
	}
	if !p.now().Before(otp.ExpiresAt) || otp.Attempts >= p.opts.OTPMaxAttempts {
		return StatusResponse{}, ErrInvalidCode
	}

	if bcrypt.CompareHashAndPassword([]byte(otp.CodeHash), []byte(code)) != nil {
		if _, err := p.store.IncrementEmailOTPAttempts(ctx, otp.ID); err != nil {
			p.logger.Error(ctx, "failed to record verification attempt", err)
		}
		return StatusResponse{}, ErrInvalidCode
	}

	if err := p.store.ConsumeEmailOTP(ctx, otp.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, ErrInvalidCode
		}
		p.logger.Error(ctx, "failed to consume verification code", err)
		return StatusResponse{}, err
	}

	var row store.WaitlistEntry
	if role != "" {
		row, err = p.store.GetEntryByEmail(ctx, string(role), email)
	} else {
		row, err = p.store.GetLatestEntryByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StatusResponse{}, ErrEntryNotFound
		}
		p.logger.Error(ctx, "failed to get waitlist entry by email", err)
		return StatusResponse{}, err
	}

	return p.statusFor(ctx, row)
}

func generateOTP() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
