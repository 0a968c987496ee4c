// server.go - HTTP surface of the contact relay
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/zach-dev/internal/config"
	"github.com/Zachkp/zach-dev/internal/contact"
	"github.com/Zachkp/zach-dev/internal/logger"
	"github.com/Zachkp/zach-dev/internal/mailer"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	engine *gin.Engine
	log    *slog.Logger
	salt   string
}

// newServer wires the relay into a gin engine. gin's mode must already be set.
func newServer(cfg config.Config, relay *contact.Relay, log *slog.Logger, salt string) *server {
	s := &server{
		engine: gin.New(),
		log:    log,
		salt:   salt,
	}

	s.engine.Use(gin.Recovery(), requestID(), s.accessLog(), cors(cfg.AllowOrigins))

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every method reaches the handler so non-POST gets the relay's 405.
	s.engine.Any("/api/contact", contact.Handler(relay))

	return s
}

// run serves on port until ctx is done, then drains in-flight requests.
func (s *server) run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server running", slog.Int("port", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newSender picks the mail provider named by the configuration.
func newSender(cfg config.Mail, log *slog.Logger) mailer.Sender {
	switch cfg.Provider {
	case config.ProviderResend:
		return mailer.NewResendSender(cfg.ResendAPIKey, cfg.User)
	case config.ProviderLog:
		return mailer.NewLogSender(log)
	default:
		return mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Pass)
	}
}

// requestID reuses an upstream X-Request-ID or assigns a new one, and puts
// it on the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.InfoContext(c.Request.Context(), "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client", hashIP(c.ClientIP(), s.salt)),
		)
	}
}

// cors lets the portfolio front end call the API from another origin.
// Preflight requests are answered here and never reach a handler.
func cors(allowOrigins []string) gin.HandlerFunc {
	wildcard := slices.Contains(allowOrigins, "*")
	methods := strings.Join([]string{http.MethodPost, http.MethodOptions}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !wildcard && !slices.Contains(allowOrigins, origin) {
			c.Next()
			return
		}

		h := c.Writer.Header()
		if wildcard {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Max-Age", "43200")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
