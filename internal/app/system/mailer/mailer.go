// Package mailer sends notification email through a pluggable transport.
package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Email is one outgoing message. Either body may be empty.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Address is a sender identity.
type Address struct {
	Email string
	Name  string
}

// ErrNoRecipient is returned for an email with an empty To.
var ErrNoRecipient = errors.New("mailer: no recipient")

// Mailer wraps a Sender with logging and background delivery.
type Mailer struct {
	sender  Sender
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// New returns a Mailer that gives each background send up to timeout.
func New(sender Sender, timeout time.Duration, log *zap.Logger) *Mailer {
	if sender == nil {
		sender = Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Mailer{sender: sender, log: log, timeout: timeout}
}

// Send delivers e synchronously.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return ErrNoRecipient
	}
	return m.sender.Send(ctx, e)
}

// SendAsync delivers e in the background and logs the outcome. The request
// that triggered it never waits on or fails because of mail.
func (m *Mailer) SendAsync(e Email) {
	if e.To == "" {
		m.log.Debug("mail skipped, no recipient", zap.String("subject", e.Subject))
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		start := time.Now()
		if err := m.sender.Send(ctx, e); err != nil {
			m.log.Error("mail send failed",
				zap.String("to", e.To),
				zap.String("subject", e.Subject),
				zap.Error(err))
			return
		}
		m.log.Info("mail sent",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Duration("took", time.Since(start)))
	}()
}

// Wait blocks until background sends finish.
func (m *Mailer) Wait() {
	m.wg.Wait()
}

// Nop discards mail. Used when mail_transport is "off".
type Nop struct{}

func (Nop) Send(context.Context, Email) error { return nil }

// runWithContext runs a blocking send and gives up when ctx ends. The
// transports below have no context support of their own.
func runWithContext(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
