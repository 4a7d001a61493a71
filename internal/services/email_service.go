package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendTaskReminder(toEmail, toName, title, dueDate string) error
	SendAssetDigest(toEmail, toName, body string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool // no SMTP host configured: log instead of sending
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	if smtpHost == "" {
		log.Printf("[email] no smtp host configured, running in dry-run mode")
		return &emailService{from: fromEmail, dryRun: true}
	}
	return &emailService{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *emailService) SendTaskReminder(toEmail, toName, title, dueDate string) error {
	subject := fmt.Sprintf("Task due %s: %s", dueDate, title)
	body := fmt.Sprintf(`
		<h3>Maintenance task due tomorrow</h3>
		<p>Hello %s,</p>
		<p>The task <strong>%s</strong> is due on <strong>%s</strong>.</p>
		<p>Please update its status once the work is done.</p>
	`, toName, title, dueDate)
	return s.send(toEmail, subject, body)
}

func (s *emailService) SendAssetDigest(toEmail, toName, body string) error {
	subject := "Preventive maintenance due tomorrow"
	html := fmt.Sprintf(`
		<h3>Assets due for service</h3>
		<p>Hello %s,</p>
		%s
	`, toName, body)
	return s.send(toEmail, subject, html)
}

func (s *emailService) send(toEmail, subject, body string) error {
	if s.dryRun {
		log.Printf("[email][dry-run] to=%s subject=%q", toEmail, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}
