package email

import (
	"strings"
	"testing"

	"bloodbridge_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(provider string) config.EmailConfig {
	return config.EmailConfig{
		Provider:       provider,
		Username:       "user@gmail.com",
		Password:       "app-password",
		SendGridAPIKey: "SG.key",
	}
}

func customConfig() config.EmailConfig {
	return config.EmailConfig{
		Provider: "custom",
		Username: "relay",
		Password: "secret",
		SMTPHost: "mail.internal",
		SMTPPort: 2525,
	}
}

func TestBuiltinTemplatesRender(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	html, err := tm.Render(TemplateEmergencyNotification, TemplateData{
		"DonorName":    "Test Donor",
		"PatientName":  "John Doe",
		"HospitalName": "Dhaka Medical College",
		"City":         "Dhaka",
		"BloodGroup":   "O-",
		"UnitsNeeded":  2,
		"Urgency":      "HIGH",
		"UrgencyColor": UrgencyColor("HIGH"),
		"ContactName":  "Jane Doe",
		"ContactPhone": "+8801700000001",
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "John Doe"))
	assert.True(t, strings.Contains(html, "O-"))
	assert.True(t, strings.Contains(html, UrgencyColor("HIGH")))

	html, err = tm.Render(TemplateRequestConfirmation, TemplateData{
		"ContactName":  "Jane Doe",
		"PatientName":  "John Doe",
		"HospitalName": "Dhaka Medical College",
		"City":         "Dhaka",
		"BloodGroup":   "O-",
		"UnitsNeeded":  2,
		"Urgency":      "HIGH",
		"UrgencyColor": UrgencyColor("HIGH"),
	})
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "Jane Doe"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", TemplateData{})
	assert.Error(t, err)
}

func TestUrgencyColorFallback(t *testing.T) {
	assert.Equal(t, "#dc2626", UrgencyColor("CRITICAL"))
	assert.Equal(t, "#6b7280", UrgencyColor("UNKNOWN"))
}

func TestResolveSMTPConfigProviders(t *testing.T) {
	cases := []struct {
		provider string
		wantHost string
		wantUser string
	}{
		{"gmail", "smtp.gmail.com", "user@gmail.com"},
		{"outlook", "smtp-mail.outlook.com", "user@gmail.com"},
		{"sendgrid", "smtp.sendgrid.net", "apikey"},
	}

	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg, err := ResolveSMTPConfig(configFor(tc.provider))
			require.NoError(t, err)
			assert.Equal(t, tc.wantHost, cfg.Host)
			assert.Equal(t, 587, cfg.Port)
			assert.Equal(t, tc.wantUser, cfg.Username)
		})
	}

	custom, err := ResolveSMTPConfig(customConfig())
	require.NoError(t, err)
	assert.Equal(t, "mail.internal", custom.Host)
	assert.Equal(t, 2525, custom.Port)

	_, err = ResolveSMTPConfig(configFor("mailgun"))
	assert.Error(t, err)
}
