package app

import "storehub_backend/internal/pkg/email"

// MockEmailSender is used in tests and local development when SMTP is
// not configured.
type MockEmailSender struct{}

func (m *MockEmailSender) Send(e *email.Email) error { return nil }
func (m *MockEmailSender) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	return nil
}
func (m *MockEmailSender) SendNotification(to, subject, message string) error { return nil }
func (m *MockEmailSender) SendLowStockAlert(to, adminName string, data email.LowStockData) error {
	return nil
}
