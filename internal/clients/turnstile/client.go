package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"waitlist-service/internal/observability"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrMissingToken     = errors.New("captcha token is required")
	ErrVerificationFail = errors.New("captcha verification failed")
)

// verifyResponse is the subset of the siteverify answer the service reads
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
}

// Client checks Cloudflare Turnstile tokens submitted with public forms
type Client struct {
	secretKey  string
	verifyURL  string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a Turnstile client. It returns nil when no secret is
// configured, which turns captcha checks off.
func NewClient(secretKey string, logger *observability.Logger) *Client {
	if secretKey == "" {
		logger.Info(context.Background(), "turnstile secret not set, captcha checks disabled")
		return nil
	}
	return &Client{
		secretKey:  secretKey,
		verifyURL:  defaultVerifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Verify returns nil when token is a valid, unused Turnstile token for the
// caller at remoteIP.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create captcha verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call turnstile", err)
		return fmt.Errorf("captcha service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha service: unexpected status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("captcha service: failed to decode response: %w", err)
	}

	if !body.Success {
		c.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "captcha_errors", Value: strings.Join(body.ErrorCodes, ",")},
		), "turnstile rejected token")
		return ErrVerificationFail
	}
	return nil
}
