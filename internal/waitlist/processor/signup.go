package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"waitlist-service/internal/observability"
	"waitlist-service/internal/store"
	"waitlist-service/internal/waitlist/queue"
	"waitlist-service/internal/waitlist/utils"

	"github.com/google/uuid"
)

// Certificate is an uploaded vendor compliance document
type Certificate struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SignupRequest represents a request to join the waitlist
type SignupRequest struct {
	Role         string
	FullName     string
	Email        string
	Phone        *string
	Answers      queue.Answers
	ReferralCode *string
	Consent      bool
	Certificate  *Certificate
}

// SignupResponse represents the response after joining the waitlist
type SignupResponse struct {
	ID           uuid.UUID `json:"id"`
	ReferralCode string    `json:"referral_code"`
	ReferralLink string    `json:"referral_link"`
}

// Signup validates and stores a new entry, then credits the referrer
func (p *WaitlistProcessor) Signup(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	role, err := queue.ParseRole(req.Role)
	if err != nil {
		return SignupResponse{}, ErrInvalidRole
	}
	email := utils.NormalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "role", Value: string(role)},
		observability.Field{Key: "email", Value: email},
	)

	if err := p.validateSignup(role, email, fullName, req); err != nil {
		return SignupResponse{}, err
	}

	// Check if email already exists for this role
	_, err = p.store.GetEntryByEmail(ctx, string(role), email)
	if err == nil {
		return SignupResponse{}, ErrAlreadyOnWaitlist
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to check email existence", err)
		return SignupResponse{}, err
	}

	referredBy := p.resolveReferrer(ctx, req.ReferralCode, email)

	var score int
	if role == queue.RoleVendor {
		score = queue.VendorPriorityScore(req.Answers)
	}

	var certificateKey string
	var certificateURL *string
	if req.Certificate != nil {
		certificateKey = certificateObjectKey(req.Certificate.ContentType)
		url, err := p.certificates.Upload(ctx, certificateKey, req.Certificate.Body, req.Certificate.Size, req.Certificate.ContentType)
		if err != nil {
			p.logger.Error(ctx, "failed to upload certificate", err)
			return SignupResponse{}, fmt.Errorf("failed to upload to certificate storage: %w", err)
		}
		certificateURL = &url
	}

	params := store.CreateEntryParams{
		Role:                string(role),
		FullName:            fullName,
		Email:               email,
		Phone:               trimmedOrNil(req.Phone),
		Answers:             req.Answers,
		ReferredBy:          referredBy,
		VendorPriorityScore: score,
		CertificateURL:      certificateURL,
	}

	entry, err := p.createEntry(ctx, params)
	if err != nil {
		if certificateKey != "" {
			if removeErr := p.certificates.Remove(ctx, certificateKey); removeErr != nil {
				p.logger.WarnWithError(ctx, "failed to remove orphaned certificate", removeErr)
			}
		}
		if errors.Is(err, store.ErrDuplicateEntry) {
			return SignupResponse{}, ErrAlreadyOnWaitlist
		}
		p.logger.Error(ctx, "failed to create waitlist entry", err)
		return SignupResponse{}, err
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "entry_id", Value: entry.ID.String()})

	// Referral credit never fails the signup
	if referredBy != nil {
		if err := p.store.CreditReferrer(ctx, *referredBy, queue.ReferralReward); err != nil {
			p.logger.Error(ctx, "failed to credit referrer", err)
			p.metrics.ReferralCreditFailed()
		}
	}
	p.metrics.SignupCreated(string(role))

	referralLink := utils.BuildReferralLink(p.opts.WebAppURI, entry.ReferralCode)
	if p.mailer != nil {
		if err := p.mailer.SendSignupConfirmation(ctx, entry.Email, entry.FullName, entry.Role, referralLink); err != nil {
			p.logger.WarnWithError(ctx, "failed to send signup confirmation", err)
		}
	}

	p.logger.Info(ctx, "entry joined the waitlist")

	return SignupResponse{
		ID:           entry.ID,
		ReferralCode: entry.ReferralCode,
		ReferralLink: referralLink,
	}, nil
}

func (p *WaitlistProcessor) validateSignup(role queue.Role, email, fullName string, req SignupRequest) error {
	if fullName == "" {
		return ErrFullNameRequired
	}
	if !validEmail(email) {
		return ErrInvalidEmail
	}
	if !req.Consent {
		return ErrConsentRequired
	}
	for _, key := range cuisineAnswerKeys {
		if req.Answers.Get(key).Len() > maxCuisineSelections {
			return ErrTooManySelections
		}
	}

	if req.Certificate == nil {
		return nil
	}
	if role != queue.RoleVendor {
		return ErrCertificateNotAllowed
	}
	if p.certificates == nil {
		return ErrUploadsDisabled
	}
	if _, ok := allowedCertificateTypes[req.Certificate.ContentType]; !ok {
		return ErrInvalidCertificate
	}
	if req.Certificate.Size <= 0 || req.Certificate.Size > p.opts.MaxUploadBytes {
		return ErrInvalidCertificate
	}
	return nil
}

// resolveReferrer returns the normalized referral code when it belongs to a
// different entrant. Unknown or self-referral codes are ignored.
func (p *WaitlistProcessor) resolveReferrer(ctx context.Context, code *string, email string) *string {
	if code == nil {
		return nil
	}
	normalized := utils.NormalizeReferralCode(*code)
	if normalized == "" {
		return nil
	}

	referrer, err := p.store.GetEntryByReferralCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			p.logger.Info(ctx, "invalid referral code provided, treating as direct signup")
		} else {
			p.logger.Error(ctx, "failed to get referrer by code", err)
		}
		return nil
	}
	if strings.EqualFold(referrer.Email, email) {
		p.logger.Info(ctx, "self referral ignored")
		return nil
	}
	return &normalized
}

// createEntry inserts params with a fresh referral code, retrying when the
// code is claimed concurrently.
func (p *WaitlistProcessor) createEntry(ctx context.Context, params store.CreateEntryParams) (store.WaitlistEntry, error) {
	var lastErr error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		code, err := p.newReferralCode(ctx)
		if err != nil {
			return store.WaitlistEntry{}, err
		}
		params.ReferralCode = code

		entry, err := p.store.CreateEntry(ctx, params)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, store.ErrReferralCodeTaken) {
			return store.WaitlistEntry{}, err
		}
		lastErr = err
	}
	return store.WaitlistEntry{}, fmt.Errorf("failed to allocate referral code: %w", lastErr)
}

// newReferralCode tries a bounded number of random codes and falls back to a
// timestamp-suffixed one when they all collide.
func (p *WaitlistProcessor) newReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := utils.GenerateReferralCode(utils.ReferralCodeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate referral code: %w", err)
		}
		exists, err := p.store.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	p.logger.Warn(ctx, "referral code attempts exhausted, using fallback code")
	code, err := utils.FallbackReferralCode(p.now())
	if err != nil {
		return "", fmt.Errorf("failed to generate referral code: %w", err)
	}
	return code, nil
}

func certificateObjectKey(contentType string) string {
	return "certificates/" + uuid.NewString() + allowedCertificateTypes[contentType]
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
