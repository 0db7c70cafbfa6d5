package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	DonorHandler        *DonorHandler
	RequestHandler      *RequestHandler
	NotificationHandler *NotificationHandler
}
