package events

import (
	"net/http"
	"strconv"
	"time"

	"hotelparadise/internal/domain"
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

// RegisterRoutes wires the authenticated event routes; admin-only
// routes expect middleware.AdminOnly() on the admin group.
func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
	rg.POST("/events/:id/register", h.Register)
	rg.DELETE("/events/:id/register", h.Withdraw)

	admin.POST("/events", h.CreateEvent)
	admin.PUT("/events/:id", h.UpdateEvent)
	admin.DELETE("/events/:id", h.DeleteEvent)
	admin.GET("/events/:id/attendees", h.ListAttendees)
}

// RegisterPublicRoutes wires the unauthenticated upcoming-events
// directory.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.ListUpcomingEvents)
}

func (h *Handler) ListUpcomingEvents(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := h.service.ListUpcomingEvents(c.Request.Context(), from)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": rows})
}

func (h *Handler) ListEvents(c *gin.Context) {
	rows, err := h.service.ListEvents(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": rows})
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	e, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": e})
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	e, err := h.service.CreateEvent(c.Request.Context(), &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": e})
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	e, err := h.service.UpdateEvent(c.Request.Context(), &domain.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"event": e})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Register(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	a, err := h.service.Register(c.Request.Context(), id, middleware.CallerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registration": a})
}

func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), id, middleware.CallerID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawn": true})
}

func (h *Handler) ListAttendees(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rows, err := h.service.ListAttendees(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attendees": rows})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid event data")
	case ErrAlreadyRegistered:
		response.Error(c, http.StatusConflict, "ALREADY_REGISTERED", "Already registered for this event")
	case ErrEventFull:
		response.Error(c, http.StatusConflict, "EVENT_FULL", "Event has reached max capacity")
	case ErrNotRegistered:
		response.Error(c, http.StatusNotFound, "NOT_REGISTERED", "Not registered for this event")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process event request")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
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
