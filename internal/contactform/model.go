// Package contactform is the terminal contact form. It sends each
// submission through a Submitter and reports the outcome with a
// transient notice or a blocking alert.
package contactform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/zach-dev/internal/contact"
)

const (
	NoticeSent  = "Your message has been sent successfully!"
	AlertFailed = "There was an error sending your message."

	// NoticeTTL is how long the success notice stays up.
	NoticeTTL = 5 * time.Second
)

// Submitter delivers one submission to the relay endpoint.
type Submitter interface {
	Submit(ctx context.Context, s contact.Submission) (string, error)
}

const (
	fieldName = iota
	fieldEmail
	fieldMessage
	fieldSend
	fieldCount
)

// submitResultMsg carries the outcome of one request.
type submitResultMsg struct {
	confirmation string
	err          error
}

// hideNoticeMsg fires NoticeTTL after a notice was shown.
type hideNoticeMsg struct {
	seq int
}

type Model struct {
	ctx       context.Context
	submitter Submitter
	logger    *slog.Logger
	noticeTTL time.Duration

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int

	notice    string
	noticeSeq int
	alert     string
	inFlight  int

	keys keyMap
	help help.Model
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithNoticeTTL overrides NoticeTTL.
func WithNoticeTTL(d time.Duration) Option {
	return func(m *Model) { m.noticeTTL = d }
}

// New creates the form. ctx bounds every request the form sends.
func New(ctx context.Context, s Submitter, opts ...Option) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 200

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 320

	message := textarea.New()
	message.Placeholder = "Say hello..."
	message.ShowLineNumbers = false
	message.SetHeight(4)

	m := Model{
		ctx:       ctx,
		submitter: s,
		logger:    slog.Default(),
		noticeTTL: NoticeTTL,
		name:      name,
		email:     email,
		message:   message,
		keys:      defaultKeys(),
		help:      help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.setFocus(fieldName)
	return m
}

// Values returns what is currently typed into the form.
func (m Model) Values() contact.Submission {
	return contact.Submission{
		Name:    m.name.Value(),
		Email:   m.email.Value(),
		Message: m.message.Value(),
	}
}

// Notice returns the visible success notice, or "".
func (m Model) Notice() string { return m.notice }

// Alert returns the visible blocking alert, or "".
func (m Model) Alert() string { return m.alert }

// InFlight returns the number of requests still waiting for an answer.
func (m Model) InFlight() int { return m.inFlight }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return m.handleResult(msg)

	case hideNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.message.SetWidth(max(min(msg.Width-4, 72), 10))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.alert != "" {
			// The alert blocks the form until dismissed.
			switch {
			case msg.Type == tea.KeyCtrlC:
				return m, tea.Quit
			case key.Matches(msg, m.keys.Dismiss):
				m.alert = ""
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case key.Matches(msg, m.keys.Enter) && m.focus == fieldSend:
			return m.submit()
		case key.Matches(msg, m.keys.Enter) && m.focus < fieldMessage:
			return m, m.setFocus(m.focus + 1)
		}
	}

	return m.updateFocused(msg)
}

// submit fires one request with the current values. There is no guard
// against repeated submits; each one is sent.
func (m Model) submit() (tea.Model, tea.Cmd) {
	s := m.Values()
	ctx, submitter := m.ctx, m.submitter
	m.inFlight++
	return m, func() tea.Msg {
		confirmation, err := submitter.Submit(ctx, s)
		return submitResultMsg{confirmation: confirmation, err: err}
	}
}

func (m Model) handleResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}

	if msg.err != nil {
		m.logger.Error("contact submission failed", slog.String("error", msg.err.Error()))
		m.alert = AlertFailed
		return m, nil
	}

	m.notice = NoticeSent
	m.noticeSeq++
	seq := m.noticeSeq

	m.name.Reset()
	m.email.Reset()
	m.message.Reset()
	focusCmd := m.setFocus(fieldName)

	hide := tea.Tick(m.noticeTTL, func(time.Time) tea.Msg {
		return hideNoticeMsg{seq: seq}
	})
	return m, tea.Batch(hide, focusCmd)
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	switch field {
	case fieldName:
		return m.name.Focus()
	case fieldEmail:
		return m.email.Focus()
	case fieldMessage:
		return m.message.Focus()
	}
	return nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case fieldMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.alert != "" {
		return "\n" + alertStyle.Render(m.alert+"\n\n[ OK ]") + "\n"
	}

	var b strings.Builder
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Get In Touch"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Name"), m.name.View())
	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Email"), m.email.View())
	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Message"), m.message.View())

	button := buttonStyle
	if m.focus == fieldSend {
		button = activeButtonStyle
	}
	b.WriteString(button.Render("Send Message"))
	if m.inFlight > 0 {
		b.WriteString("  " + pendingStyle.Render(fmt.Sprintf("sending (%d)...", m.inFlight)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}
