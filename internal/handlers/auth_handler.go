package handlers

import (
	"net/http"

	"bloodbridge_backend/internal/services"
	"bloodbridge_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	donorService services.DonorService
}

func NewAuthHandler(base *BaseHandler, donorService services.DonorService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		donorService: donorService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}

	protected := r.Group("/auth")
	protected.Use(authMW)
	{
		protected.GET("/verify", h.Verify)
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.DELETE("/delete", h.DeleteAccount)
		protected.GET("/donation-history", h.GetDonationHistory)
		protected.POST("/donation-history", h.AddDonationRecord)
	}
}

// Login - вход по email и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.donorService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Verify - проверка действительности токена
func (h *AuthHandler) Verify(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Valid:   true,
		DonorID: donorID,
	})
}

// GetProfile - профиль текущего донора
func (h *AuthHandler) GetProfile(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	profile, err := h.donorService.GetProfile(donorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile - частичное обновление профиля
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	var req dto.UpdateDonorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.donorService.UpdateProfile(donorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount - удаление аккаунта вместе с уведомлениями и историей
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	if err := h.donorService.DeleteAccount(donorID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetDonationHistory - история донаций текущего донора
func (h *AuthHandler) GetDonationHistory(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	history, err := h.donorService.GetDonationHistory(donorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": history})
}

// AddDonationRecord - новая запись о донации
func (h *AuthHandler) AddDonationRecord(c *gin.Context) {
	donorID, ok := h.GetAndAuthorizeDonorID(c)
	if !ok {
		return
	}

	var req dto.DonationRecordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.donorService.AddDonationRecord(donorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}
