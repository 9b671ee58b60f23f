package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"waitlist-service/internal/observability"
)

var (
	ErrSendingEmail  = errors.New("email service: error sending email")
	ErrEmptyTemplate = errors.New("email template is empty")
)

const (
	templateSignupConfirmation = "signup_confirmation"
	templateVerificationCode   = "verification_code"
)

// TemplateData represents the data that can be used in templates
type TemplateData struct {
	FullName     string
	Email        string
	Role         string
	ReferralLink string
	Code         string
	ExpiresIn    string
}

var templates = template.Must(template.New("").Parse(`
{{define "signup_confirmation"}}
<html>
	<body>
		<h1>You're on the list, {{.FullName}}!</h1>
		{{if eq .Role "vendor"}}
		<p>Thanks for applying to sell with us. Our team reviews every vendor application and will be in touch.</p>
		{{else}}
		<p>Thanks for joining the waitlist. We'll let you know as soon as it's your turn.</p>
		{{end}}
		{{if .ReferralLink}}
		<p>Share your link to move up the line:</p>
		<p><a href="{{.ReferralLink}}" style="background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">{{.ReferralLink}}</a></p>
		{{end}}
		<p>If you didn't sign up, you can safely ignore this email.</p>
	</body>
</html>
{{end}}
{{define "verification_code"}}
<html>
	<body>
		<h1>Your verification code</h1>
		<p style="font-size: 28px; letter-spacing: 6px;"><strong>{{.Code}}</strong></p>
		<p>This code expires in {{.ExpiresIn}}. If you didn't ask for it, you can safely ignore this email.</p>
	</body>
</html>
{{end}}
`))

// EmailService renders and sends the waitlist's transactional emails
type EmailService struct {
	sender        Sender
	logger        *observability.Logger
	defaultSender string
}

// New creates a new EmailService. When sender is nil emails are logged and
// dropped, which keeps local development free of a mail provider.
func New(sender Sender, defaultSender string, logger *observability.Logger) *EmailService {
	return &EmailService{
		sender:        sender,
		logger:        logger,
		defaultSender: defaultSender,
	}
}

func renderTemplate(name string, data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s", ErrEmptyTemplate, err.Error())
	}
	return buf.String(), nil
}

// SendSignupConfirmation confirms a new signup and shares the referral link
func (s *EmailService) SendSignupConfirmation(ctx context.Context, to, fullName, role, referralLink string) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: templateSignupConfirmation},
		observability.Field{Key: "recipient", Value: to},
	)

	html, err := renderTemplate(templateSignupConfirmation, TemplateData{
		FullName:     fullName,
		Email:        to,
		Role:         role,
		ReferralLink: referralLink,
	})
	if err != nil {
		s.logger.Error(ctx, "failed to render signup confirmation template", err)
		return err
	}

	return s.send(ctx, to, "You're on the waitlist", html)
}

// SendVerificationCode emails a one-time verification code
func (s *EmailService) SendVerificationCode(ctx context.Context, to, code string, expiresIn time.Duration) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: templateVerificationCode},
		observability.Field{Key: "recipient", Value: to},
	)

	html, err := renderTemplate(templateVerificationCode, TemplateData{
		Email:     to,
		Code:      code,
		ExpiresIn: humanizeDuration(expiresIn),
	})
	if err != nil {
		s.logger.Error(ctx, "failed to render verification code template", err)
		return err
	}

	return s.send(ctx, to, "Your verification code", html)
}

func (s *EmailService) send(ctx context.Context, to, subject, html string) error {
	if s.sender == nil {
		s.logger.Warn(ctx, "email delivery disabled, dropping email")
		return nil
	}
	if _, err := s.sender.SendEmail(ctx, s.defaultSender, to, subject, html); err != nil {
		s.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("%w: %s", ErrSendingEmail, err.Error())
	}
	return nil
}

func humanizeDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	switch {
	case minutes <= 1:
		return "1 minute"
	case minutes < 60 || minutes%60 != 0:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes == 60:
		return "1 hour"
	default:
		return fmt.Sprintf("%d hours", minutes/60)
	}
}
