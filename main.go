package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/zach-dev/internal/config"
	"github.com/Zachkp/zach-dev/internal/contact"
	"github.com/Zachkp/zach-dev/internal/contactclient"
	"github.com/Zachkp/zach-dev/internal/contactform"
	"github.com/Zachkp/zach-dev/internal/logger"
)

// CLI is the top-level command structure.
type CLI struct {
	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run the contact relay endpoint (default)."`
	Contact ContactCmd `cmd:"" help:"Open the contact form in the terminal."`
	Send    SendCmd    `cmd:"" help:"Send a single contact submission."`
}

// ServeCmd runs POST /api/contact.
type ServeCmd struct {
	Port int `help:"Listen port. Overrides PORT." default:"0"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.Port > 0 {
		cfg.Port = c.Port
	}

	log := logger.New(os.Stdout, logger.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
	})
	defer logger.Flush(2 * time.Second)

	if !cfg.Mail.Configured() {
		log.Warn("mail credentials not configured; submissions will fail until EMAIL_USER/EMAIL_PASS are set",
			slog.String("provider", cfg.Mail.Provider))
	}

	salt, err := newSalt()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	relay := contact.NewRelay(newSender(cfg.Mail, log), cfg.Mail.User, log)
	srv := newServer(cfg, relay, log, salt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.run(ctx, cfg.Port)
}

// ContactCmd opens the interactive form.
type ContactCmd struct {
	Endpoint string `help:"Contact endpoint URL." env:"CONTACT_ENDPOINT" default:"${endpoint}"`
	LogFile  string `help:"Write client logs to this file." type:"path"`
}

func (c *ContactCmd) Run() error {
	log, closeLog, err := fileLogger(c.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	form := contactform.New(ctx, contactclient.New(c.Endpoint), contactform.WithLogger(log))
	_, err = tea.NewProgram(form, tea.WithContext(ctx)).Run()
	return err
}

// SendCmd submits once without the interactive form.
type SendCmd struct {
	Endpoint string `help:"Contact endpoint URL." env:"CONTACT_ENDPOINT" default:"${endpoint}"`
	Name     string `help:"Your name."`
	Email    string `help:"Your email address."`
	Message  string `help:"The message."`
}

func (c *SendCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	msg, err := contactclient.New(c.Endpoint).Submit(ctx, contact.Submission{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
	})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

// fileLogger returns a logger writing to path, or a discarding one when
// path is empty. The terminal belongs to the form while it runs.
func fileLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return logger.New(f, logger.SentryConfig{}), func() { _ = f.Close() }, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("zach-dev"),
		kong.Description("Portfolio contact relay and client."),
		kong.UsageOnError(),
		kong.Vars{"endpoint": contactclient.DefaultEndpoint},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
