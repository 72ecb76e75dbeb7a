// Package mailer implements the scheduler.Reporter collaborator that
// sends a report after an automated savings cycle, grounded on the
// teacher's notification/service/email_service.go net/smtp sender and
// its dev-mode log-instead-of-send fallback.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"moneyhive/internal/config"
)

// Mailer sends plain-text automated-savings reports over SMTP. When
// the configured MailConfig is not Ready(), it logs instead of
// sending, the same fallback the teacher's email service uses when
// SMTP credentials are absent.
type Mailer struct {
	cfg config.MailConfig
	log *zap.Logger
}

// New builds a Mailer from the application config.
func New(cfg *config.Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg.Mail, log: log}
}

// ReportAutomatedSaving sends a one-line report to recipient. Satisfies
// scheduler.Reporter.
func (m *Mailer) ReportAutomatedSaving(ctx context.Context, recipient string) error {
	subject := "Automated savings applied"
	body := "Your scheduled automated savings distribution has been applied."

	if !m.cfg.Ready() {
		m.log.Info("mailer not ready, logging report instead of sending",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
		)
		return nil
	}

	from := m.cfg.FromEmail
	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, recipient, subject, body)

	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	if err := smtp.SendMail(addr, auth, from, []string{recipient}, []byte(message)); err != nil {
		m.log.Error("failed to send automated savings report", zap.Error(err))
		return err
	}
	return nil
}
