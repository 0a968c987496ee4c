// Package mailer defines the outbound email message and the Sender
// capability, plus the provider implementations used by the relay.
package mailer

import (
	"context"
	"errors"
	"net/mail"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNotConfigured indicates the provider has no credentials.
	ErrNotConfigured = errors.New("mail credentials not configured")
)

// Sender delivers a fully prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// Email represents a message ready for sending.
type Email struct {
	From    mail.Address // Display name and address of the sender
	ReplyTo string       // Where replies should go
	To      []string     // Recipients (at least one required)
	Subject string
	Text    string // Plain text body
	HTML    string // HTML alternative, optional
}

// Validate checks the fields every provider requires.
func (e *Email) Validate() error {
	if len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	return nil
}
