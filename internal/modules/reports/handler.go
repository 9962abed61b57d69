package reports

import (
	"net/http"
	"strconv"
	"time"

	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/reports/dashboard", h.Dashboard)
	admin.GET("/reports/income", h.Income)
	admin.GET("/reports/occupancy", h.Occupancy)
	admin.GET("/reports/events", h.Events)
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/hotel-info", h.HotelInfo)
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Income(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year and month are required")
		return
	}

	report, err := h.service.Income(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build income report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Occupancy(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD")
			return
		}
		to = parsed
	}

	report, err := h.service.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build occupancy report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Events(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year and month are required")
		return
	}

	report, err := h.service.Events(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build events report")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) HotelInfo(c *gin.Context) {
	info, err := h.service.HotelInfo(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load hotel info")
		return
	}
	response.Success(c, http.StatusOK, info)
}
