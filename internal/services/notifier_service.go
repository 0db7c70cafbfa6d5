package services

import (
	"fmt"

	"bloodbridge_backend/internal/email"
	"bloodbridge_backend/internal/logger"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/services/dto"
)

type NotifierService interface {
	// Email dispatch
	SendEmergencyNotifications(request *models.BloodRequest) (*dto.DispatchSummary, error)
	SendRequestConfirmation(request *models.BloodRequest) error
}

type notifierService struct {
	provider        email.Provider
	matchingService MatchingService
}

func NewNotifierService(provider email.Provider, matchingService MatchingService) NotifierService {
	return &notifierService{
		provider:        provider,
		matchingService: matchingService,
	}
}

// SendEmergencyNotifications рассылает письма подходящим донорам в порядке
// приоритета. Сбой отправки одному донору не прерывает рассылку остальным:
// ошибка логируется, донор не учитывается в notified.
func (s *notifierService) SendEmergencyNotifications(request *models.BloodRequest) (*dto.DispatchSummary, error) {
	summary, err := s.matchingService.GetPrioritizedDonors(request)
	if err != nil {
		return nil, err
	}

	result := &dto.DispatchSummary{}
	subject := fmt.Sprintf("Urgent: %s blood needed in %s", request.BloodGroup, request.City)

	for _, match := range summary.Results {
		result.Attempted++

		data := email.TemplateData{
			"DonorName":      match.Donor.Name,
			"PatientName":    request.PatientName,
			"HospitalName":   request.HospitalName,
			"City":           request.City,
			"BloodGroup":     request.BloodGroup.Label(),
			"UnitsNeeded":    request.UnitsNeeded,
			"Urgency":        string(request.Urgency),
			"UrgencyColor":   email.UrgencyColor(string(request.Urgency)),
			"ContactName":    request.ContactName,
			"ContactPhone":   request.ContactPhone,
			"AdditionalInfo": request.AdditionalInfo,
		}

		err := s.provider.SendTemplate(
			[]string{match.Donor.Email},
			subject,
			email.TemplateEmergencyNotification,
			data,
		)
		if err != nil {
			logger.Warn("failed to email donor",
				"donor_id", match.Donor.ID,
				"request_id", request.ID,
				"error", err.Error(),
			)
			continue
		}

		result.Notified++
	}

	logger.Info("emergency notifications dispatched",
		"request_id", request.ID,
		"attempted", result.Attempted,
		"notified", result.Notified,
	)

	return result, nil
}

// SendRequestConfirmation отправляет подтверждение контактному лицу запроса.
// Без контактного email ничего не отправляется.
func (s *notifierService) SendRequestConfirmation(request *models.BloodRequest) error {
	if request.ContactEmail == "" {
		return nil
	}

	data := email.TemplateData{
		"ContactName":  request.ContactName,
		"PatientName":  request.PatientName,
		"HospitalName": request.HospitalName,
		"City":         request.City,
		"BloodGroup":   request.BloodGroup.Label(),
		"UnitsNeeded":  request.UnitsNeeded,
		"Urgency":      string(request.Urgency),
		"UrgencyColor": email.UrgencyColor(string(request.Urgency)),
	}

	return s.provider.SendTemplate(
		[]string{request.ContactEmail},
		"Your blood request has been received",
		email.TemplateRequestConfirmation,
		data,
	)
}
