package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/funnelforge/funnelforge/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendReceipt sends the post-purchase receipt with the account signup link.
func SendReceipt(to, name, productName string) error {
	base := env.PublicBaseURL()
	if name == "" {
		name = "Valued Customer"
	}

	body := fmt.Sprintf(
		"<h1>Welcome, %s!</h1>"+
			"<p>Thank you for purchasing <strong>%s</strong>.</p>"+
			"<p>You can access your products immediately here:</p>"+
			`<a href="%s/sign-up?email=%s" style="background:#4F46E5;color:white;padding:12px 24px;text-decoration:none;border-radius:5px;">Create Your Account</a>`,
		name, productName, base, to,
	)

	return SendMail(to, "Access your purchase", body)
}
