package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"blogiq-backend/internal/config"
)

// Mailer delivers password reset links over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

const resetBody = `You are receiving this email because you (or someone else) have requested to reset the password for your account.

Please click on the following link, or paste it into your browser, to complete the process:

%s

If you did not request this, please ignore this email and your password will remain unchanged.`

// SendPasswordReset sends the reset link to the recipient.
func (m *Mailer) SendPasswordReset(recipient, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", "Password Reset")
	msg.SetBody("text/plain", fmt.Sprintf(resetBody, resetLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
