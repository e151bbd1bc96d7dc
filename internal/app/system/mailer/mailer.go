// internal/app/system/mailer/mailer.go
//
// Package mailer sends transactional email over SMTP. Delivery is best
// effort: Send reports success or failure but never returns an error, so a
// mail outage cannot fail the request that triggered the message. A circuit
// breaker stops hammering a dead SMTP host.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Enabled  bool
}

// Mailer sends email through one SMTP host.
type Mailer struct {
	cfg     Config
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker
}

// New creates a Mailer. When cfg.Enabled is false, Send logs the message
// instead of delivering it; local development runs without an SMTP host.
func New(cfg Config, logger *zap.Logger) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("smtp circuit state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &Mailer{cfg: cfg, logger: logger, breaker: breaker}
}

// Send delivers an HTML email and reports whether delivery succeeded.
// Failures are logged, not returned.
func (m *Mailer) Send(to, subject, htmlBody string) bool {
	if !m.cfg.Enabled {
		m.logger.Info("mail disabled, skipping send",
			zap.String("to", to),
			zap.String("subject", subject))
		return true
	}

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.deliver(to, subject, htmlBody)
	})
	if err != nil {
		m.logger.Error("send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return false
	}

	m.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return true
}

func (m *Mailer) deliver(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Message-ID: <%s@taskhub>\r\n", uuid.NewString())
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
