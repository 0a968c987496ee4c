package contact

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"

	"github.com/Zachkp/zach-dev/internal/mailer"
)

// Subject is the fixed subject of every relayed submission.
const Subject = "New Contact Form Submission"

//go:embed templates/*
var templateFS embed.FS

var (
	textBody = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/submission.txt"))
	htmlBody = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/submission.html"))
)

// NewEmail builds the message sent to recipient for s. The submitter's
// name is the sender display name and their address is the reply target.
func NewEmail(s Submission, recipient string) (*mailer.Email, error) {
	var text bytes.Buffer
	if err := textBody.Execute(&text, s); err != nil {
		return nil, err
	}

	var html bytes.Buffer
	data := struct {
		Submission
		Lines []string
	}{s, strings.Split(strings.ReplaceAll(s.Message, "\r\n", "\n"), "\n")}
	if err := htmlBody.Execute(&html, data); err != nil {
		return nil, err
	}

	return &mailer.Email{
		From:    mail.Address{Name: s.Name, Address: recipient},
		ReplyTo: s.Email,
		To:      []string{recipient},
		Subject: Subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
