package mail

import (
	"context"
	"errors"
	"fmt"

	"waitlist-service/internal/observability"

	"github.com/resendlabs/resend-go"
)

var ErrMissingAPIKey = errors.New("resend api key is not set")

// ResendClient delivers transactional email through Resend
type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

func NewResendClient(apiKey string, logger *observability.Logger) (*ResendClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}

	return &ResendClient{
		client: client,
		logger: logger,
	}, nil
}

// SendEmail sends one HTML email and returns the Resend message id
func (c *ResendClient) SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "email_subject", Value: subject},
	)

	res, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("resend: failed to send email: %w", err)
	}

	c.logger.Info(observability.WithFields(ctx, observability.Field{Key: "message_id", Value: res.Id}), "email sent successfully")
	return res.Id, nil
}
