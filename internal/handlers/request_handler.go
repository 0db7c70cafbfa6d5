package handlers

import (
	"net/http"

	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/services"
	"bloodbridge_backend/internal/services/dto"
	"bloodbridge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	*BaseHandler
	requestService  services.RequestService
	matchingService services.MatchingService
}

func NewRequestHandler(base *BaseHandler, requestService services.RequestService, matchingService services.MatchingService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:     base,
		requestService:  requestService,
		matchingService: matchingService,
	}
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.CreateBloodRequest)
		requests.GET("", h.ListActiveRequests)
		requests.GET("/:requestId", h.GetBloodRequest)
		requests.GET("/:requestId/matches", h.GetMatches)
	}

	protected := r.Group("/requests")
	protected.Use(authMW)
	{
		protected.PUT("/:requestId/close", h.CloseBloodRequest)
	}
}

// CreateBloodRequest создает запрос крови. Уведомление доноров уходит
// в фон: ответ не ждет рассылки.
func (h *RequestHandler) CreateBloodRequest(c *gin.Context) {
	var req dto.CreateBloodRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if !models.BloodGroup(req.BloodGroup).IsValid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid blood group: "+req.BloodGroup))
		return
	}
	if !models.UrgencyLevel(req.Urgency).IsValid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid urgency level: "+req.Urgency))
		return
	}

	resp, err := h.requestService.CreateBloodRequest(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListActiveRequests - страница активных запросов
func (h *RequestHandler) ListActiveRequests(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.requestService.ListActiveBloodRequests(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBloodRequest - запрос по id
func (h *RequestHandler) GetBloodRequest(c *gin.Context) {
	resp, err := h.requestService.GetBloodRequest(c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMatches - подходящие доноры для запроса, по убыванию балла
func (h *RequestHandler) GetMatches(c *gin.Context) {
	resp, err := h.requestService.GetBloodRequest(c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	request := &models.BloodRequest{
		PatientName:  resp.PatientName,
		HospitalName: resp.HospitalName,
		City:         resp.City,
		State:        resp.State,
		BloodGroup:   models.BloodGroup(resp.BloodGroup),
		Urgency:      models.UrgencyLevel(resp.Urgency),
		UnitsNeeded:  resp.UnitsNeeded,
	}
	request.ID = resp.ID

	summary, err := h.matchingService.GetPrioritizedDonors(request)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CloseBloodRequest - деактивация запроса
func (h *RequestHandler) CloseBloodRequest(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeDonorID(c); !ok {
		return
	}

	if err := h.requestService.CloseBloodRequest(c.Param("requestId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blood request closed"})
}
