// Package mailer delivers purchased eBooks to buyers over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/wneessen/go-mail"
)

// Result messages returned by Send.
const (
	MsgSent          = "e-mail sent"
	MsgNotConfigured = "mail server not configured"
	MsgFailed        = "failed to send e-mail"
)

const (
	subject = "Your eBooks - Bibliotech"
	body    = "Thank you for your purchase! Your eBooks are attached."
)

// Config holds the outbound SMTP settings.
type Config struct {
	Host     string
	Port     int
	From     string // sender address, also the SMTP username
	Password string // sender credential
	Timeout  time.Duration
}

// Sender sends one message per call. It never retries.
type Sender struct {
	cfg  Config
	send func(ctx context.Context, msg *mail.Msg) error
}

// New returns a Sender for cfg.
func New(cfg Config) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	s := &Sender{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// Configured reports whether both the sender address and credential are set.
func (s *Sender) Configured() bool {
	return s.cfg.From != "" && s.cfg.Password != ""
}

// Send mails every file in attachments to to. It reports success and a
// human-readable message; failures are never returned as errors.
func (s *Sender) Send(ctx context.Context, to string, attachments []string) (bool, string) {
	if !s.Configured() {
		return false, MsgNotConfigured
	}

	msg, err := s.buildMessage(to, attachments)
	if err != nil {
		slog.Warn("build e-mail", "to", to, "err", err)
		return false, MsgFailed
	}
	if err := s.send(ctx, msg); err != nil {
		slog.Warn("send e-mail", "to", to, "err", err)
		return false, MsgFailed
	}
	return true, MsgSent
}

func (s *Sender) buildMessage(to string, attachments []string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	for _, path := range attachments {
		// All files must be present; a partial delivery is not attempted
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("attachment %s: %w", path, err)
		}
		msg.AttachFile(path)
	}
	return msg, nil
}

// dialAndSend opens one session, upgrades it with STARTTLS, authenticates and sends.
func (s *Sender) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.From),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("new smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("dial and send: %w", err)
	}
	return nil
}
