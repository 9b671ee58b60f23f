package email

import (
	"context"
)

// Sender delivers a rendered email
type Sender interface {
	SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error)
}
