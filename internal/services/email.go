package services

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"edify-backend/internal/models"
)

type EmailService struct {
	host       string
	port       string
	user       string
	pass       string
	from       string
	notifyAddr string
	devMode    bool
}

func NewEmailService(host, port, user, pass, from, notifyAddr string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:       host,
		port:       port,
		user:       user,
		pass:       pass,
		from:       from,
		notifyAddr: notifyAddr,
		devMode:    devMode,
	}
}

// SendContactNotification alerts the agency inbox about a new contact form
// submission.
func (s *EmailService) SendContactNotification(c *models.ContactSubmission) error {
	subject := fmt.Sprintf("New contact submission from %s", c.Name)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: #0f766e; padding: 24px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 20px; font-weight: 700;">Edify — New Lead</h1>
    </div>
    <div style="padding: 24px;">
      <p style="color: #1e293b; font-size: 14px; margin: 0 0 8px;"><strong>Name:</strong> %s</p>
      <p style="color: #1e293b; font-size: 14px; margin: 0 0 8px;"><strong>Email:</strong> %s</p>
      <p style="color: #1e293b; font-size: 14px; margin: 16px 0 4px;"><strong>Message:</strong></p>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0; white-space: pre-wrap;">%s</p>
    </div>
  </div>
</body>
</html>`, html.EscapeString(c.Name), html.EscapeString(c.Email), html.EscapeString(c.Message))

	return s.sendHTML(s.notifyAddr, subject, body)
}

func (s *EmailService) sendHTML(to, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", to, subject)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}
