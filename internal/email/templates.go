package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов.
const (
	TemplateEmergencyNotification = "emergency_notification"
	TemplateRequestConfirmation   = "request_confirmation"
)

// urgencyColors - цвет плашки срочности в письмах
var urgencyColors = map[string]string{
	"CRITICAL": "#dc2626",
	"HIGH":     "#ea580c",
	"MEDIUM":   "#ca8a04",
	"LOW":      "#16a34a",
}

// UrgencyColor возвращает цвет для уровня срочности
func UrgencyColor(urgency string) string {
	if c, ok := urgencyColors[urgency]; ok {
		return c
	}
	return "#6b7280"
}

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	builtins := map[string]string{
		TemplateEmergencyNotification: emergencyNotificationHTML,
		TemplateRequestConfirmation:   requestConfirmationHTML,
	}
	for name, body := range builtins {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, fmt.Errorf("failed to load builtin template %s: %w", name, err)
		}
	}

	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// --- Встроенные шаблоны ---

const emergencyNotificationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f3f4f6; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #b91c1c; color: #ffffff; padding: 16px 24px;">
      <h2 style="margin: 0;">Urgent Blood Donation Request</h2>
    </div>
    <div style="padding: 24px;">
      <p>Dear {{.DonorName}},</p>
      <p>A patient near you urgently needs <strong>{{.BloodGroup}}</strong> blood.</p>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 4px 0; color: #6b7280;">Patient</td><td>{{.PatientName}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Hospital</td><td>{{.HospitalName}}, {{.City}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Units needed</td><td>{{.UnitsNeeded}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Urgency</td>
            <td><span style="background: {{.UrgencyColor}}; color: #ffffff; padding: 2px 10px; border-radius: 10px;">{{.Urgency}}</span></td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Contact</td><td>{{.ContactName}}, {{.ContactPhone}}</td></tr>
      </table>
      {{if .AdditionalInfo}}<p style="color: #6b7280;">{{.AdditionalInfo}}</p>{{end}}
      <p>If you are able to donate, please reach out to the contact person as soon as possible.</p>
      <p style="color: #9ca3af; font-size: 12px;">You received this email because you are registered as a blood donor on BloodBridge.</p>
    </div>
  </div>
</body>
</html>`

const requestConfirmationHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f3f4f6; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: #047857; color: #ffffff; padding: 16px 24px;">
      <h2 style="margin: 0;">Blood Request Received</h2>
    </div>
    <div style="padding: 24px;">
      <p>Dear {{.ContactName}},</p>
      <p>Your blood request for <strong>{{.PatientName}}</strong> has been registered and matching donors are being notified.</p>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 4px 0; color: #6b7280;">Blood group</td><td>{{.BloodGroup}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Units needed</td><td>{{.UnitsNeeded}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Hospital</td><td>{{.HospitalName}}, {{.City}}</td></tr>
        <tr><td style="padding: 4px 0; color: #6b7280;">Urgency</td>
            <td><span style="background: {{.UrgencyColor}}; color: #ffffff; padding: 2px 10px; border-radius: 10px;">{{.Urgency}}</span></td></tr>
      </table>
      <p>We will keep notifying donors while the request remains active.</p>
      <p style="color: #9ca3af; font-size: 12px;">BloodBridge donor network</p>
    </div>
  </div>
</body>
</html>`
