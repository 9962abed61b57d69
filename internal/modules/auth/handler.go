package auth

import (
	"net/http"

	"hotelparadise/internal/middleware"
	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.PUT("/auth/profile", h.UpdateProfile)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrEmailTaken:
		response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email or DNI already registered")
	case ErrDNITaken:
		response.Error(c, http.StatusConflict, "DNI_TAKEN", "DNI already registered to another account")
	case ErrNoFields:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No fields to update")
	case ErrInvalidCredentials:
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process auth request")
	}
}
