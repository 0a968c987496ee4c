package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/resend/resend-go/v3"
)

// ResendSender sends email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key. from is the
// verified sender address used when an Email carries no address of its own.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, email *Email) error {
	if s.from == "" {
		return ErrNotConfigured
	}
	if err := email.Validate(); err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    s.fromHeader(email.From),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// fromHeader keeps the display name but always sends from the verified address.
func (s *ResendSender) fromHeader(from mail.Address) string {
	addr := mail.Address{Name: from.Name, Address: s.from}
	return addr.String()
}
