package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// GomailSender delivers mail over SMTP via gomail.
type GomailSender struct {
	config    Config
	templates *TemplateManager
	dialer    *gomail.Dialer
}

func NewGomailSender(config Config) (Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &GomailSender{
		config:    config,
		templates: tm,
		dialer:    gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

// Send delivers a prepared message.
func (s *GomailSender) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	return s.dialer.DialAndSend(m)
}

// SendTemplate renders a template and delivers the result.
func (s *GomailSender) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	htmlBody, err := s.templates.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	email := &Email{
		To:       to,
		Subject:  subject,
		Body:     htmlToText(htmlBody),
		HTMLBody: htmlBody,
	}

	return s.Send(email)
}

// SendNotification delivers a plain notification email.
func (s *GomailSender) SendNotification(to, subject, message string) error {
	data := TemplateData{
		Subject: subject,
		Message: message,
	}

	return s.SendTemplate([]string{to}, subject, "notification", data)
}

// SendLowStockAlert delivers a low-stock warning to one admin.
func (s *GomailSender) SendLowStockAlert(to, adminName string, data LowStockData) error {
	data.UserName = adminName
	if data.Subject == "" {
		data.Subject = fmt.Sprintf("Low stock: %s", data.ProductName)
	}

	return s.SendTemplate([]string{to}, data.Subject, "low_stock", data)
}

// htmlToText derives a rough plain-text version of an HTML body.
func htmlToText(html string) string {
	text := strings.ReplaceAll(html, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "<p>", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n")

	for {
		start := strings.Index(text, "<")
		if start == -1 {
			break
		}
		end := strings.Index(text, ">")
		if end == -1 {
			break
		}
		text = text[:start] + text[end+1:]
	}

	return strings.TrimSpace(text)
}
