package reservation

import (
	"net/http"
	"strconv"
	"time"

	"hotelparadise/internal/middleware"
	"hotelparadise/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations", h.ListReservations)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.PUT("/reservations/:id", h.UpdateReservation)
	rg.DELETE("/reservations/:id", h.CancelReservation)
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), CreateInput{
		RoomID:     req.RoomID,
		UserID:     middleware.CallerID(c),
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": r})
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.service.GetReservation(c.Request.Context(), id, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) ListReservations(c *gin.Context) {
	rows, err := h.service.ListReservations(c.Request.Context(), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": rows})
}

func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in := UpdateInput{
		RoomID:     req.RoomID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Notes:      req.Notes,
	}

	if req.CheckIn != nil {
		t, err := parseDate(*req.CheckIn)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
			return
		}
		in.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := parseDate(*req.CheckOut)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
			return
		}
		in.CheckOut = &t
	}

	r, err := h.service.UpdateReservation(c.Request.Context(), id, middleware.CallerID(c), middleware.CallerRole(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.service.CancelReservation(c.Request.Context(), id, middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case ErrRoomNotFound:
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case ErrRoomUnavailable:
		response.Error(c, http.StatusBadRequest, "ROOM_UNAVAILABLE", "Room is not open for booking")
	case ErrInvalidDates:
		response.Error(c, http.StatusBadRequest, "INVALID_DATES", "Check-out must be after check-in")
	case ErrDateConflict:
		response.Error(c, http.StatusConflict, "DATE_CONFLICT", "Room is not available for the selected dates")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process reservation")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
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
