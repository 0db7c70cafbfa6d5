package handlers

import (
	"net/http"
	"time"

	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/services"
	"bloodbridge_backend/internal/services/dto"
	"bloodbridge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DonorHandler struct {
	*BaseHandler
	donorService    services.DonorService
	matchingService services.MatchingService
}

func NewDonorHandler(base *BaseHandler, donorService services.DonorService, matchingService services.MatchingService) *DonorHandler {
	return &DonorHandler{
		BaseHandler:     base,
		donorService:    donorService,
		matchingService: matchingService,
	}
}

func (h *DonorHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	donors := r.Group("/donors")
	{
		donors.POST("", h.RegisterDonor)
		donors.GET("", h.ListDonors)
		donors.GET("/statistics", h.GetStatistics)
	}

	protected := r.Group("/donors")
	protected.Use(authMW)
	{
		protected.GET("/eligibility", h.CheckEligibility)
	}
}

// RegisterDonor - регистрация нового донора
func (h *DonorHandler) RegisterDonor(c *gin.Context) {
	var req dto.RegisterDonorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if !models.BloodGroup(req.BloodGroup).IsValid() {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid blood group: "+req.BloodGroup))
		return
	}

	resp, err := h.donorService.RegisterDonor(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListDonors - страница доноров реестра
func (h *DonorHandler) ListDonors(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.donorService.ListDonors(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStatistics - сводка реестра по группам крови и городам,
// опционально суженная параметрами city и state
func (h *DonorHandler) GetStatistics(c *gin.Context) {
	stats, err := h.matchingService.GetDonorStatistics(c.Query("city"), c.Query("state"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CheckEligibility - проверка пригодности текущего донора к донации
func (h *DonorHandler) CheckEligibility(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	profile, err := h.donorService.GetProfile(donorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	donor := &models.Donor{
		BloodGroup:       models.BloodGroup(profile.BloodGroup),
		Age:              profile.Age,
		Weight:           profile.Weight,
		Available:        profile.Available,
		LastDonationDate: profile.LastDonationDate,
	}

	c.JSON(http.StatusOK, h.matchingService.IsDonorEligible(donor, time.Now()))
}
