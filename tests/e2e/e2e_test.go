package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelparadise/internal/database"
	"hotelparadise/internal/domain"
	"hotelparadise/internal/middleware"
	"hotelparadise/internal/modules/auth"
	"hotelparadise/internal/modules/events"
	"hotelparadise/internal/modules/reports"
	"hotelparadise/internal/modules/reservation"
	"hotelparadise/internal/modules/rooms"
	jwtsvc "hotelparadise/internal/pkg/jwt"
	"hotelparadise/internal/pkg/keymutex"
	"hotelparadise/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	adminToken string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.ConnectQuiet(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	eventRepo := repository.NewEventRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	locks := keymutex.New()

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))

	reservationService := reservation.NewService(reservationRepo, roomRepo, locks, nil)
	reservationHandler := reservation.NewHandler(reservationService)

	roomsService := rooms.NewService(roomRepo, reservationRepo)
	roomsHandler := rooms.NewHandler(roomsService, reservationService)

	eventsHandler := events.NewHandler(events.NewService(eventRepo, locks, nil))

	reportsService := reports.NewService(roomRepo, reservationRepo, eventRepo)
	reportsHandler := reports.NewHandler(reportsService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		public := v1.Group("/public")
		{
			roomsHandler.RegisterPublicRoutes(public)
			eventsHandler.RegisterPublicRoutes(public)
			reportsHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(jwtService))

		admin := protected.Group("/")
		admin.Use(middleware.AdminOnly())
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			roomsHandler.RegisterRoutes(protected, admin)
			eventsHandler.RegisterRoutes(protected, admin)
			reportsHandler.RegisterRoutes(protected, admin)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	adminUser := &domain.User{
		Name:         "Admin User",
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(context.Background(), adminUser), "Failed to create admin user")

	adminToken, err := jwtService.GenerateToken(adminUser.ID, domain.RoleAdmin)
	require.NoError(t, err)

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		adminToken: adminToken,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// registerClient signs up a client through the API and returns its
// token.
func (s *E2ETestSuite) registerClient(t *testing.T, email string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test Client",
		"email":    email,
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createRoom provisions a room as admin and returns its id.
func (s *E2ETestSuite) createRoom(t *testing.T, number string, rate float64) float64 {
	w := s.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
		"number":       number,
		"type":         "double",
		"nightly_rate": rate,
		"capacity":     2,
	}, s.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "create room failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	room := resp.Data["room"].(map[string]interface{})
	return room["id"].(float64)
}

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.registerClient(t, "client@test.com")

	t.Run("POST /auth/login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "client@test.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("POST /auth/login wrong password", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "client@test.com",
			"password": "nope-nope",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("GET /auth/me", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, token)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "client@test.com", user["email"])
		assert.Equal(t, "client", user["role"])
	})

	t.Run("PUT /auth/profile", func(t *testing.T) {
		w := suite.makeRequest("PUT", "/api/v1/auth/profile", map[string]interface{}{
			"name":  "Renamed Client",
			"phone": "600123456",
		}, token)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "Renamed Client", user["name"])
		assert.Equal(t, "600123456", user["phone"])
		assert.Equal(t, "client@test.com", user["email"])
	})

	t.Run("PUT /auth/profile with no fields", func(t *testing.T) {
		w := suite.makeRequest("PUT", "/api/v1/auth/profile", map[string]interface{}{}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("PUT /auth/profile dni conflict", func(t *testing.T) {
		other := suite.registerClient(t, "other@test.com")
		w := suite.makeRequest("PUT", "/api/v1/auth/profile", map[string]interface{}{
			"dni": "11111111A",
		}, other)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("PUT", "/api/v1/auth/profile", map[string]interface{}{
			"dni": "11111111A",
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "DNI_TAKEN", resp.Error.Code)
	})

	t.Run("GET /auth/me without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("POST /rooms as client is forbidden", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
			"number": "999", "type": "single", "nightly_rate": 10, "capacity": 1,
		}, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFlow_ReservationLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	clientToken := suite.registerClient(t, "guest@test.com")
	roomID := suite.createRoom(t, "101", 120)

	book := func(token, checkIn, checkOut string) *httptest.ResponseRecorder {
		return suite.makeRequest("POST", "/api/v1/reservations", map[string]interface{}{
			"room_id":     roomID,
			"guest_name":  "John Guest",
			"guest_email": "guest@test.com",
			"check_in":    checkIn,
			"check_out":   checkOut,
		}, token)
	}

	var reservationID float64

	t.Run("POST /reservations", func(t *testing.T) {
		w := book(clientToken, "2030-05-01", "2030-05-04")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		r := resp.Data["reservation"].(map[string]interface{})
		reservationID = r["id"].(float64)
		assert.Equal(t, "confirmed", r["status"])
		assert.Equal(t, 360.0, r["total"]) // 3 nights x 120
	})

	t.Run("POST /reservations overlapping window", func(t *testing.T) {
		w := book(clientToken, "2030-05-03", "2030-05-06")
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "DATE_CONFLICT", resp.Error.Code)
	})

	t.Run("POST /reservations shared boundary", func(t *testing.T) {
		w := book(clientToken, "2030-05-04", "2030-05-07")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("POST /reservations zero nights", func(t *testing.T) {
		w := book(clientToken, "2030-06-01", "2030-06-01")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_DATES", resp.Error.Code)
	})

	t.Run("GET /rooms/:id/availability", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/rooms/%.0f/availability?check_in=2030-05-02&check_out=2030-05-03", roomID)
		w := suite.makeRequest("GET", path, nil, clientToken)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, false, resp.Data["available"])
	})

	t.Run("PUT /reservations/:id shrink stay", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f", reservationID)
		w := suite.makeRequest("PUT", path, map[string]interface{}{
			"check_out": "2030-05-03",
		}, clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		r := resp.Data["reservation"].(map[string]interface{})
		assert.Equal(t, 240.0, r["total"]) // recomputed: 2 nights x 120
	})

	t.Run("GET /reservations/:id of another user", func(t *testing.T) {
		otherToken := suite.registerClient(t, "other@test.com")

		path := fmt.Sprintf("/api/v1/reservations/%.0f", reservationID)
		w := suite.makeRequest("GET", path, nil, otherToken)
		// A foreign reservation is indistinguishable from a missing one.
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DELETE /reservations/:id", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/reservations/%.0f", reservationID)
		w := suite.makeRequest("DELETE", path, nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		r := resp.Data["reservation"].(map[string]interface{})
		assert.Equal(t, "cancelled", r["status"])

		// Cancelling again finds nothing confirmed.
		w = suite.makeRequest("DELETE", path, nil, clientToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /reservations after cancellation frees the window", func(t *testing.T) {
		w := book(clientToken, "2030-05-01", "2030-05-04")
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestFlow_EventEnrollment(t *testing.T) {
	suite := setupTestSuite(t)

	var eventID float64

	t.Run("POST /events", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/events", map[string]interface{}{
			"title":        "Wine Tasting",
			"date":         "2030-07-15",
			"time":         "19:00",
			"location":     "Rooftop Bar",
			"max_capacity": 2,
		}, suite.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		event := resp.Data["event"].(map[string]interface{})
		eventID = event["id"].(float64)
	})

	first := suite.registerClient(t, "first@test.com")
	second := suite.registerClient(t, "second@test.com")
	third := suite.registerClient(t, "third@test.com")

	registerPath := fmt.Sprintf("/api/v1/events/%.0f/register", eventID)

	t.Run("POST /events/:id/register fills seats", func(t *testing.T) {
		w := suite.makeRequest("POST", registerPath, nil, first)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("POST", registerPath, nil, second)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("POST /events/:id/register duplicate", func(t *testing.T) {
		w := suite.makeRequest("POST", registerPath, nil, first)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "ALREADY_REGISTERED", resp.Error.Code)
	})

	t.Run("POST /events/:id/register when full", func(t *testing.T) {
		w := suite.makeRequest("POST", registerPath, nil, third)
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "EVENT_FULL", resp.Error.Code)
	})

	t.Run("DELETE /events/:id/register frees a seat", func(t *testing.T) {
		w := suite.makeRequest("DELETE", registerPath, nil, second)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", registerPath, nil, third)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("GET /events shows stats", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/events", nil, first)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		list := resp.Data["events"].([]interface{})
		require.Len(t, list, 1)

		event := list[0].(map[string]interface{})
		assert.Equal(t, 2.0, event["attendee_count"])
		assert.Equal(t, 0.0, event["remaining_seats"])
		assert.Equal(t, true, event["user_registered"])
	})

	t.Run("GET /events/:id/attendees as admin", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/events/%.0f/attendees", eventID)
		w := suite.makeRequest("GET", path, nil, suite.adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		attendees := resp.Data["attendees"].([]interface{})
		assert.Len(t, attendees, 2)
	})
}

func TestFlow_PublicDirectory(t *testing.T) {
	suite := setupTestSuite(t)

	suite.createRoom(t, "101", 100)

	// A maintenance room never shows up publicly.
	w := suite.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
		"number":       "102",
		"type":         "single",
		"nightly_rate": 80,
		"capacity":     1,
		"status":       "maintenance",
	}, suite.adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("GET /public/rooms", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/public/rooms", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		list := resp.Data["rooms"].([]interface{})
		require.Len(t, list, 1)

		room := list[0].(map[string]interface{})
		assert.Equal(t, "101", room["number"])
		assert.Equal(t, "available", room["effective_status"])
	})

	t.Run("GET /public/hotel-info", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/public/hotel-info", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.NotEmpty(t, resp.Data["hotel_name"])
		assert.Equal(t, 1.0, resp.Data["total_rooms_available"])
	})

	t.Run("GET /rooms without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/rooms", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_AdminReports(t *testing.T) {
	suite := setupTestSuite(t)
	clientToken := suite.registerClient(t, "guest@test.com")
	suite.createRoom(t, "301", 150)

	t.Run("GET /reports/occupancy defaults to current month", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reports/occupancy", nil, suite.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, 1.0, resp.Data["total_rooms"])
		assert.Equal(t, 0.0, resp.Data["occupied_rooms"])
		assert.Len(t, resp.Data["rooms"], 1)
	})

	t.Run("GET /reports/occupancy rejects bad dates", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reports/occupancy?from=yesterday", nil, suite.adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /reports/events requires year and month", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reports/events", nil, suite.adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /reports/events", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reports/events?year=2024&month=7", nil, suite.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, 0.0, resp.Data["total_events"])
	})

	t.Run("reports are admin only", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/reports/occupancy", nil, clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("GET", "/api/v1/reports/events?year=2024&month=7", nil, clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
