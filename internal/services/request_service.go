package services

import (
	"errors"

	"bloodbridge_backend/internal/dispatch"
	"bloodbridge_backend/internal/logger"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/internal/services/dto"
	"bloodbridge_backend/pkg/apperrors"
)

type RequestService interface {
	CreateBloodRequest(req *dto.CreateBloodRequestRequest) (*dto.CreateBloodRequestResponse, error)
	GetBloodRequest(id string) (*dto.BloodRequestResponse, error)
	ListActiveBloodRequests(page, pageSize int) (*dto.BloodRequestListResponse, error)
	CloseBloodRequest(id string) error
}

type requestService struct {
	requestRepo         repositories.BloodRequestRepository
	matchingService     MatchingService
	notificationService NotificationService
	notifierService     NotifierService
	dispatcher          *dispatch.Dispatcher
}

func NewRequestService(
	requestRepo repositories.BloodRequestRepository,
	matchingService MatchingService,
	notificationService NotificationService,
	notifierService NotifierService,
	dispatcher *dispatch.Dispatcher,
) RequestService {
	return &requestService{
		requestRepo:         requestRepo,
		matchingService:     matchingService,
		notificationService: notificationService,
		notifierService:     notifierService,
		dispatcher:          dispatcher,
	}
}

// CreateBloodRequest сохраняет запрос и запускает побочные эффекты в фоне:
// in-app уведомления, письма донорам и подтверждение контактному лицу.
// Ответ не ждет рассылки и не зависит от ее исхода: сбой почты или
// очереди уведомлений не может провалить создание запроса.
func (s *requestService) CreateBloodRequest(req *dto.CreateBloodRequestRequest) (*dto.CreateBloodRequestResponse, error) {
	request := &models.BloodRequest{
		PatientName:    req.PatientName,
		HospitalName:   req.HospitalName,
		City:           req.City,
		State:          req.State,
		BloodGroup:     models.BloodGroup(req.BloodGroup),
		Urgency:        models.UrgencyLevel(req.Urgency),
		UnitsNeeded:    req.UnitsNeeded,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		AdditionalInfo: req.AdditionalInfo,
		IsActive:       true,
	}

	if err := s.requestRepo.CreateBloodRequest(request); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "blood_request", "Failed to create blood request", 500)
	}

	// Число подходящих доноров на момент создания. Ошибка подбора здесь
	// не критична: запрос уже сохранен.
	matched := 0
	if donors, _, err := s.matchingService.FindMatchingDonors(request, repositories.DefaultMatchOptions()); err == nil {
		matched = len(donors)
	} else {
		logger.Warn("donor matching failed during request creation",
			"request_id", request.ID,
			"error", err.Error(),
		)
	}

	s.dispatcher.Submit("in_app_notifications", func() error {
		_, err := s.notificationService.CreateNotificationsForMatchingDonors(request)
		return err
	})

	s.dispatcher.Submit("emergency_emails", func() error {
		_, err := s.notifierService.SendEmergencyNotifications(request)
		return err
	})

	s.dispatcher.Submit("request_confirmation", func() error {
		return s.notifierService.SendRequestConfirmation(request)
	})

	return &dto.CreateBloodRequestResponse{
		Request:       dto.NewBloodRequestResponse(request),
		MatchedDonors: matched,
	}, nil
}

func (s *requestService) GetBloodRequest(id string) (*dto.BloodRequestResponse, error) {
	request, err := s.requestRepo.FindBloodRequestByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewBloodRequestResponse(request), nil
}

func (s *requestService) ListActiveBloodRequests(page, pageSize int) (*dto.BloodRequestListResponse, error) {
	requests, total, err := s.requestRepo.FindActiveBloodRequests(page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.BloodRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, *dto.NewBloodRequestResponse(&requests[i]))
	}

	return &dto.BloodRequestListResponse{
		Requests: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *requestService) CloseBloodRequest(id string) error {
	err := s.requestRepo.CloseBloodRequest(id)
	if err != nil {
		if errors.Is(err, repositories.ErrBloodRequestNotFound) {
			return apperrors.ErrRequestNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
