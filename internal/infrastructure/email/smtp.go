package email

import (
	"context"
	"fmt"

	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/resilience"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig configures the SMTP sender
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers messages over SMTP with gomail
type SMTPSender struct {
	dialer  *gomail.Dialer
	breaker *gobreaker.CircuitBreaker
}

// NewSMTPSender creates an SMTPSender. Port 465 uses implicit TLS, other
// ports upgrade with STARTTLS when the server offers it.
func NewSMTPSender(cfg SMTPConfig, logger *zap.Logger) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == 465
	return &SMTPSender{
		dialer:  d,
		breaker: resilience.NewBreaker("smtp", resilience.BreakerSettings{}, logger),
	}
}

func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}
	return m
}

// Send dials the server and sends msg. gomail has no context support, so ctx
// is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return resilience.Do(s.breaker, func() error {
		if err := s.dialer.DialAndSend(buildMessage(msg)); err != nil {
			return fmt.Errorf("smtp: send: %w", err)
		}
		return nil
	})
}
