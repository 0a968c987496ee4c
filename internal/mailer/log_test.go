package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSender_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, s.Send(context.Background(), testEmail()))
	assert.Contains(t, buf.String(), "New Contact Form Submission")
	assert.Contains(t, buf.String(), "jane@x.com")
}

func TestSenderFunc(t *testing.T) {
	t.Parallel()

	var got *Email
	var s Sender = SenderFunc(func(_ context.Context, e *Email) error {
		got = e
		return nil
	})

	email := testEmail()
	require.NoError(t, s.Send(context.Background(), email))
	assert.Same(t, email, got)
}
