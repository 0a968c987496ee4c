package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// headerSafe removes line breaks so a value cannot start a new header.
var headerSafe = strings.NewReplacer("\r", "", "\n", "")

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender submits mail to an SMTP server using PLAIN auth.
// net/smtp upgrades to STARTTLS when the server offers it.
type SMTPSender struct {
	host     string
	port     int
	user     string
	pass     string
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSender creates a sender that authenticates as user.
func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		sendMail: smtp.SendMail,
		now:      time.Now,
	}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if s.user == "" || s.pass == "" {
		return ErrNotConfigured
	}
	if err := email.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.buildMessage(email)
	if err != nil {
		return fmt.Errorf("smtp: building message: %w", err)
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := s.sendMail(addr, auth, s.user, email.To, msg); err != nil {
		return fmt.Errorf("smtp: send to %s: %w", addr, err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(email *Email) ([]byte, error) {
	// The account is the envelope sender; most providers rewrite any other From.
	from := email.From
	if from.Address == "" {
		from.Address = s.user
	}

	var buf bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&buf, "%s: %s\r\n", k, headerSafe.Replace(v)) }

	header("From", from.String())
	header("To", strings.Join(email.To, ", "))
	// An unparseable reply address is dropped rather than written raw.
	if addr, err := mail.ParseAddress(email.ReplyTo); err == nil {
		header("Reply-To", (&mail.Address{Address: addr.Address}).String())
	}
	header("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header("Date", s.now().Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host))
	header("MIME-Version", "1.0")

	if email.HTML == "" {
		header("Content-Type", `text/plain; charset="utf-8"`)
		header("Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		if err := writeQuotedPrintable(&buf, email.Text); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	header("Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, mw.Boundary()))
	buf.WriteString("\r\n")

	for _, part := range []struct{ contentType, body string }{
		{`text/plain; charset="utf-8"`, email.Text},
		{`text/html; charset="utf-8"`, email.HTML},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeQuotedPrintable(w, part.body); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeQuotedPrintable(w io.Writer, body string) error {
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}
