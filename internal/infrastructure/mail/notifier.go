// Package mail delivers one-time verification codes over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

const subject = "Student Election Verification"

// Notifier is the SMTP-backed implementation of ports.Notifier.
type Notifier struct {
	client *mail.Client
	from   string
}

// Config captures the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// New builds an SMTP notifier. The timeout bounds the whole dial-and-send
// exchange; a slow or unreachable relay surfaces as a recoverable error.
func New(cfg Config) (*Notifier, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Notifier{client: client, from: cfg.From}, nil
}

// Send delivers the one-time code to the given address.
func (n *Notifier) Send(ctx context.Context, to, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Your verification code is %s", code))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	return nil
}
