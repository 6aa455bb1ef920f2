package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mail is a single outgoing email
type Mail struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// SendGridMailer sends email through the SendGrid v3 API
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridMailer returns a mailer, or nil when no API key is configured
func NewSendGridMailer(apiKey, fromAddress, fromName string) *SendGridMailer {
	if apiKey == "" {
		zap.S().Warn("SENDGRID_API_KEY not set, email notifications disabled")
		return nil
	}
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// Send delivers m, treating any non-2xx answer as an error
func (s *SendGridMailer) Send(ctx context.Context, m Mail) error {
	to := mail.NewEmail(m.ToName, m.ToEmail)
	message := mail.NewSingleEmail(s.from, m.Subject, to, m.Text, m.HTML)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
