package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"rentvehicle/config"

	"go.uber.org/zap"
)

// sendMailFunc is the SMTP entry point, a variable so delivery can be
// substituted in tests.
var sendMailFunc = smtp.SendMail

// SendMail delivers a plain-text message through the configured SMTP relay.
// When no relay host is configured the message is logged and dropped, which
// keeps local development working without one.
func SendMail(to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		GetLogger().Info("No SMTP relay configured, mail logged only",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	msg := buildMailMessage(cfg.MailFrom, to, subject, body)
	if err := sendMailFunc(addr, auth, cfg.MailFrom, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func buildMailMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func otpMinutes(expiresIn time.Duration) int {
	minutes := int(expiresIn / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func orName(fullName, fallback string) string {
	if strings.TrimSpace(fullName) == "" {
		return fallback
	}
	return fullName
}

// SendAdminLoginOTPEmail mails the back office login verification code.
func SendAdminLoginOTPEmail(to, fullName, code string, expiresIn time.Duration) error {
	body := fmt.Sprintf("Hello %s,\n\nYour admin login verification code is: %s\nThis code will expire in %d minute(s).\n\nIf you did not request this login, please ignore this email.\n",
		orName(fullName, "Admin"), code, otpMinutes(expiresIn))
	return SendMail(to, "Admin login verification code", body)
}

// SendPasswordResetOTPEmail mails the forgot-password verification code.
func SendPasswordResetOTPEmail(to, fullName, code string, expiresIn time.Duration) error {
	body := fmt.Sprintf("Hello %s,\n\nYour password reset verification code is: %s\nThis code will expire in %d minute(s).\n\nIf you did not request a password reset, please ignore this email.\n",
		orName(fullName, "User"), code, otpMinutes(expiresIn))
	return SendMail(to, "Password reset verification code", body)
}

// SendPasswordChangeOTPEmail mails the change-password verification code.
func SendPasswordChangeOTPEmail(to, fullName, code string, expiresIn time.Duration) error {
	body := fmt.Sprintf("Hello %s,\n\nYour password change verification code is: %s\nThis code will expire in %d minute(s).\n\nIf you did not request this action, please secure your account immediately.\n",
		orName(fullName, "User"), code, otpMinutes(expiresIn))
	return SendMail(to, "Password change verification code", body)
}

// SendPasswordChangedEmail confirms a completed password change or reset.
func SendPasswordChangedEmail(to, fullName string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour account password has been changed successfully.\n\nIf you did not perform this action, please contact support immediately.\n",
		orName(fullName, "User"))
	return SendMail(to, "Password changed successfully", body)
}

// SendBookingEmail delivers a booking lifecycle email.
func SendBookingEmail(to, fullName, subject, body string) error {
	greeting := fmt.Sprintf("Hello %s,\n\n", orName(fullName, "Customer"))
	return SendMail(to, subject, greeting+body)
}
