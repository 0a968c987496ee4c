package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_TextLayout(t *testing.T) {
	t.Parallel()

	email, err := NewEmail(Submission{Name: "Jane", Email: "jane@x.com", Message: "Hello"}, testRecipient)
	require.NoError(t, err)

	assert.Equal(t, "Name: Jane\nEmail: jane@x.com\nMessage:\nHello\n", email.Text)

	name := strings.Index(email.HTML, "Jane")
	addr := strings.Index(email.HTML, "jane@x.com")
	msg := strings.Index(email.HTML, "Hello")
	assert.True(t, name < addr && addr < msg, "fields out of order in %q", email.HTML)
}

func TestNewEmail_KeepsValuesVerbatimInText(t *testing.T) {
	t.Parallel()

	sub := Submission{Name: "O'Brien & Sons", Email: "a+b@x.com", Message: "<b>hi</b>\nsecond line"}
	email, err := NewEmail(sub, testRecipient)
	require.NoError(t, err)

	assert.Contains(t, email.Text, sub.Name)
	assert.Contains(t, email.Text, sub.Email)
	assert.Contains(t, email.Text, sub.Message)
}

func TestNewEmail_EscapesHTML(t *testing.T) {
	t.Parallel()

	sub := Submission{Name: "Jane", Email: "jane@x.com", Message: "<script>alert(1)</script>\nbye"}
	email, err := NewEmail(sub, testRecipient)
	require.NoError(t, err)

	assert.NotContains(t, email.HTML, "<script>")
	assert.Contains(t, email.HTML, "&lt;script&gt;")
	assert.Contains(t, email.HTML, "<br/>bye")
}

func TestSubmission_Missing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"name", "email", "message"}, Submission{}.Missing())
	assert.Equal(t, []string{"email"}, Submission{Name: "a", Message: "c"}.Missing())
	assert.Empty(t, Submission{Name: "a", Email: "b", Message: "c"}.Missing())
}
