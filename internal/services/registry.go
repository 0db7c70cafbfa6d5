package services

import (
	"bloodbridge_backend/internal/auth"
	"bloodbridge_backend/internal/dispatch"
	"bloodbridge_backend/internal/email"
	"bloodbridge_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	DonorService        DonorService
	MatchingService     MatchingService
	NotificationService NotificationService
	NotifierService     NotifierService
	RequestService      RequestService

	TokenService *auth.TokenService
	Dispatcher   *dispatch.Dispatcher
}

// NewServiceContainer собирает репозитории и сервисы поверх подключения к БД.
func NewServiceContainer(
	db *gorm.DB,
	emailProvider email.Provider,
	tokens *auth.TokenService,
	dispatcher *dispatch.Dispatcher,
) *ServiceContainer {
	donorRepo := repositories.NewDonorRepository(db)
	requestRepo := repositories.NewBloodRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	donationRepo := repositories.NewDonationRepository(db)

	matchingService := NewMatchingService(donorRepo, requestRepo)
	notificationService := NewNotificationService(notificationRepo, donorRepo)
	notifierService := NewNotifierService(emailProvider, matchingService)
	requestService := NewRequestService(requestRepo, matchingService, notificationService, notifierService, dispatcher)
	donorService := NewDonorService(donorRepo, donationRepo, tokens)

	return &ServiceContainer{
		DonorService:        donorService,
		MatchingService:     matchingService,
		NotificationService: notificationService,
		NotifierService:     notifierService,
		RequestService:      requestService,
		TokenService:        tokens,
		Dispatcher:          dispatcher,
	}
}
