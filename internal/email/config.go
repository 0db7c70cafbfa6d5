package email

import (
	"fmt"
	"time"

	"bloodbridge_backend/internal/config"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	ReplyTo   string
	UseTLS    bool
	Timeout   time.Duration
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:    "localhost",
		Port:    587,
		UseTLS:  true,
		Timeout: 30 * time.Second,
	}
}

// ResolveSMTPConfig подбирает SMTP настройки по имени провайдера.
// Поддерживаются: gmail, outlook, sendgrid, custom.
// SendGrid аутентифицируется логином "apikey" и API-ключом вместо пароля.
func ResolveSMTPConfig(cfg config.EmailConfig) (*SMTPConfig, error) {
	out := DefaultConfig()
	out.FromEmail = cfg.FromEmail
	out.FromName = cfg.FromName
	out.ReplyTo = cfg.ReplyTo
	if out.FromName == "" {
		out.FromName = "BloodBridge"
	}

	switch cfg.Provider {
	case "", "gmail":
		out.Host = "smtp.gmail.com"
		out.Port = 587
		out.Username = cfg.Username
		out.Password = cfg.Password
	case "outlook":
		out.Host = "smtp-mail.outlook.com"
		out.Port = 587
		out.Username = cfg.Username
		out.Password = cfg.Password
	case "sendgrid":
		out.Host = "smtp.sendgrid.net"
		out.Port = 587
		out.Username = "apikey"
		out.Password = cfg.SendGridAPIKey
	case "custom":
		out.Host = cfg.SMTPHost
		out.Port = cfg.SMTPPort
		out.Username = cfg.Username
		out.Password = cfg.Password
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}

	if cfg.SMTPPort != 0 && cfg.Provider != "custom" {
		out.Port = cfg.SMTPPort
	}
	if out.FromEmail == "" {
		out.FromEmail = cfg.Username
	}

	return out, nil
}
