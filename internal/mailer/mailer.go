// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/YusovID/journal-review-service/internal/config"
	mail "github.com/go-mail/mail/v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPSender struct {
	cfg    config.Mail
	log    *slog.Logger
	dialer *mail.Dialer
}

// NewSMTPSender returns a sender for cfg. When cfg.Host is empty the sender runs in
// test mode and only logs what it would have sent.
func NewSMTPSender(cfg config.Mail, log *slog.Logger) *SMTPSender {
	s := &SMTPSender{cfg: cfg, log: log}

	if cfg.Host != "" {
		d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		d.StartTLSPolicy = mail.MandatoryStartTLS
		d.TLSConfig = &tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: cfg.SkipTLSVerify,
		}
		s.dialer = d
	}

	return s
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	const op = "internal.mailer.Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if msg.To == "" {
		return nil
	}

	if s.dialer == nil {
		s.log.Info("smtp not configured, email not sent",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("body", preview(msg.HTML, 100)),
		)

		return nil
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%s: failed to send email to %s: %w", op, msg.To, err)
	}

	return nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n]) + "..."
}
