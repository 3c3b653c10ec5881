package utils

import (
	"fmt"
	"log"
	"strconv"

	"github.com/HamidAbid/modifyx-backend/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. With no SMTP host
// configured it logs the message instead, so local runs work without
// credentials.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer() *Mailer {
	port, err := strconv.Atoi(config.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	return &Mailer{
		host:     config.GetEnv("SMTP_HOST", ""),
		port:     port,
		username: config.GetEnv("SMTP_USERNAME", ""),
		password: config.GetEnv("SMTP_PASSWORD", ""),
		from:     config.GetEnv("EMAIL_FROM", "ModifyX <no-reply@modifyx.app>"),
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.host == "" {
		log.Printf("SMTP not configured, skipping email to %s: %s", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmation emails the buyer after checkout. Best-effort:
// the order flow logs failures and moves on.
func (m *Mailer) SendOrderConfirmation(to string) error {
	if to == "" {
		return nil
	}
	body := `
      <div style="font-family: sans-serif; padding: 20px;">
        <h2>Thank you for your order!</h2>
        <p>We have received your order and will notify you when it ships.</p>
        <hr/>
        <h3>Thank you for choosing ModifyX!</h3>
      </div>`
	return m.send(to, "Thank you for your order", body)
}

// SendOTP emails a one-time code for password reset.
func (m *Mailer) SendOTP(to, code string) error {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; padding: 20px;">
        <h2>Your OTP Code</h2>
        <p>Use the following code to reset your password:</p>
        <div style="font-size: 24px; font-weight: bold; margin: 10px 0;">%s</div>
        <p>This OTP will expire in 5 minutes.</p>
      </div>`, code)
	return m.send(to, "Your OTP for Password Reset", body)
}
