package app

import (
	"bloodbridge_backend/internal/email"
	"bloodbridge_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error {
	logger.Info("mock email", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	logger.Info("mock email", "to", to, "subject", subject, "template", templateName)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
func (m *MockEmailProvider) Close() error    { return nil }
