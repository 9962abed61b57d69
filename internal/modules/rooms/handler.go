package rooms

import (
	"net/http"
	"strconv"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service      *Service
	availability AvailabilityChecker
}

func NewHandler(service *Service, availability AvailabilityChecker) *Handler {
	return &Handler{
		service:      service,
		availability: availability,
	}
}

// RegisterRoutes wires the authenticated room routes; admin-only routes
// expect middleware.AdminOnly() on the admin group.
func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/rooms", h.ListRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/rooms/:id/availability", h.CheckAvailability)

	admin.POST("/rooms", h.CreateRoom)
	admin.PUT("/rooms/:id", h.UpdateRoom)
	admin.DELETE("/rooms/:id", h.DeleteRoom)
}

// RegisterPublicRoutes wires the unauthenticated directory.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListPublicRooms)
	rg.GET("/rooms/:id/availability", h.CheckAvailability)
}

func (h *Handler) ListRooms(c *gin.Context) {
	rows, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rows})
}

func (h *Handler) ListPublicRooms(c *gin.Context) {
	rows, err := h.service.ListPublicRooms(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rows})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	startStr := c.Query("check_in")
	endStr := c.Query("check_out")
	if startStr == "" || endStr == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out are required")
		return
	}

	start, err := parseDate(startStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(endStr)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	available, err := h.availability.CheckAvailability(c.Request.Context(), id, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"available": available,
		"check_in":  startStr,
		"check_out": endStr,
	})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), &domain.Room{
		Number:      req.Number,
		Type:        req.Type,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
		Status:      domain.RoomStatus(req.Status),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), &domain.Room{
		ID:          id,
		Number:      req.Number,
		Type:        req.Type,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
		Status:      domain.RoomStatus(req.Status),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data")
	case ErrHasActiveReservations:
		response.Error(c, http.StatusBadRequest, "ROOM_IN_USE", "Room has confirmed reservations and cannot be deleted")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process room request")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return 0, false
	}
	return id, true
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
