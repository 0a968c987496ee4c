package contact

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Zachkp/zach-dev/internal/mailer"
)

// Response texts returned to the form.
const (
	MsgSent             = "Message sent successfully!"
	MsgMethodNotAllowed = "Only POST requests allowed"
	ErrMissingFields    = "Missing required fields."
	ErrSendFailed       = "Failed to send message."
)

// MessageBody is the JSON body of success and 405 responses.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the JSON body of 400 and 500 responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// Response is the status and JSON body the endpoint answers with.
type Response struct {
	Status int
	Body   any
}

// MethodNotAllowed is the answer to any non-POST request.
func MethodNotAllowed() Response {
	return Response{Status: http.StatusMethodNotAllowed, Body: MessageBody{Message: MsgMethodNotAllowed}}
}

// Relay validates submissions and forwards them by email to one recipient.
// It holds no per-request state and is safe for concurrent use.
type Relay struct {
	sender    mailer.Sender
	recipient string
	logger    *slog.Logger
}

// NewRelay creates a Relay delivering every submission to recipient.
func NewRelay(sender mailer.Sender, recipient string, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		sender:    sender,
		recipient: recipient,
		logger:    logger.With(slog.String("component", "contact")),
	}
}

// Submit checks s, sends it and maps the outcome to a Response.
// Provider errors are logged, never returned to the caller.
func (r *Relay) Submit(ctx context.Context, s Submission) Response {
	if missing := s.Missing(); len(missing) > 0 {
		r.logger.InfoContext(ctx, "contact submission rejected",
			slog.String("missing", strings.Join(missing, ",")))
		return Response{Status: http.StatusBadRequest, Body: ErrorBody{Error: ErrMissingFields}}
	}

	email, err := NewEmail(s, r.recipient)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to build contact email", slog.String("error", err.Error()))
		return Response{Status: http.StatusInternalServerError, Body: ErrorBody{Error: ErrSendFailed}}
	}

	if err := r.sender.Send(ctx, email); err != nil {
		r.logger.ErrorContext(ctx, "failed to send contact email",
			slog.String("error", err.Error()),
			slog.String("reply_to", s.Email))
		return Response{Status: http.StatusInternalServerError, Body: ErrorBody{Error: ErrSendFailed}}
	}

	r.logger.InfoContext(ctx, "contact email sent",
		slog.String("name", s.Name),
		slog.String("reply_to", s.Email))
	return Response{Status: http.StatusOK, Body: MessageBody{Message: MsgSent}}
}
