package reports

import (
	"context"
	"math"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/repository"
)

// RoomCounter supplies room totals for the dashboard.
type RoomCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.RoomStatus) (int64, error)
}

// ReservationStats supplies the reservation aggregates the reports
// project. Reports never touch the write path.
type ReservationStats interface {
	CountActiveAt(ctx context.Context, at time.Time) (int64, error)
	OccupiedRoomIDs(ctx context.Context, at time.Time) (map[int64]bool, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (repository.RevenueStats, error)
	ListConfirmedBetweenWithDetails(ctx context.Context, from, to time.Time) ([]repository.ReservationDetails, error)
	CountOccupiedRoomsBetween(ctx context.Context, from, to time.Time) (int64, error)
	ListRoomOccupancy(ctx context.Context, at time.Time) ([]repository.RoomOccupancyDetail, error)
}

// EventCounter supplies event totals and attendance aggregates.
type EventCounter interface {
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	AttendanceBetween(ctx context.Context, from, to time.Time) (repository.AttendanceStats, error)
	ListWithStatsBetween(ctx context.Context, from, to time.Time) ([]repository.EventWithStats, error)
}

type Service struct {
	rooms        RoomCounter
	reservations ReservationStats
	events       EventCounter
}

func NewService(rooms RoomCounter, reservations ReservationStats, events EventCounter) *Service {
	return &Service{
		rooms:        rooms,
		reservations: reservations,
		events:       events,
	}
}

type Dashboard struct {
	TotalRooms         int64   `json:"total_rooms"`
	AvailableRooms     int64   `json:"available_rooms"`
	ActiveReservations int64   `json:"active_reservations"`
	UpcomingEvents     int64   `json:"upcoming_events"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	OccupancyRate      int     `json:"occupancy_rate"`
}

type IncomeReport struct {
	Year         int                             `json:"year"`
	Month        int                             `json:"month"`
	Total        float64                         `json:"total"`
	Reservations int64                           `json:"reservations"`
	Average      float64                         `json:"average"`
	Detail       []repository.ReservationDetails `json:"detail"`
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func monthWindow(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	at := today()

	totalRooms, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	baseAvailable, err := s.rooms.CountByStatus(ctx, domain.RoomAvailable)
	if err != nil {
		return nil, err
	}

	occupied, err := s.reservations.OccupiedRoomIDs(ctx, at)
	if err != nil {
		return nil, err
	}
	availableRooms := baseAvailable - int64(len(occupied))
	if availableRooms < 0 {
		availableRooms = 0
	}

	activeReservations, err := s.reservations.CountActiveAt(ctx, at)
	if err != nil {
		return nil, err
	}

	upcomingEvents, err := s.events.CountBetween(ctx, at, at.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	monthFrom, monthTo := monthWindow(at.Year(), int(at.Month()))
	revenue, err := s.reservations.RevenueBetween(ctx, monthFrom, monthTo)
	if err != nil {
		return nil, err
	}

	occupancyRate := 0
	if totalRooms > 0 {
		occupancyRate = int(math.Round(float64(totalRooms-availableRooms) / float64(totalRooms) * 100))
	}

	return &Dashboard{
		TotalRooms:         totalRooms,
		AvailableRooms:     availableRooms,
		ActiveReservations: activeReservations,
		UpcomingEvents:     upcomingEvents,
		MonthlyRevenue:     revenue.Total,
		OccupancyRate:      occupancyRate,
	}, nil
}

func (s *Service) Income(ctx context.Context, year, month int) (*IncomeReport, error) {
	from, to := monthWindow(year, month)

	stats, err := s.reservations.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	detail, err := s.reservations.ListConfirmedBetweenWithDetails(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &IncomeReport{
		Year:         year,
		Month:        month,
		Total:        stats.Total,
		Reservations: stats.Count,
		Average:      stats.Average,
		Detail:       detail,
	}, nil
}

// OccupancyReport breaks down room usage over a date window, with the
// per-room detail as of today.
type OccupancyReport struct {
	From           time.Time                        `json:"from"`
	To             time.Time                        `json:"to"`
	OccupiedRooms  int64                            `json:"occupied_rooms"`
	AvailableRooms int64                            `json:"available_rooms"`
	TotalRooms     int64                            `json:"total_rooms"`
	OccupancyRate  int                              `json:"occupancy_rate"`
	Rooms          []repository.RoomOccupancyDetail `json:"rooms"`
}

// Occupancy reports room usage across [from, to]. Zero bounds default
// to the current month.
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) (*OccupancyReport, error) {
	if from.IsZero() || to.IsZero() {
		at := today()
		monthFrom, monthTo := monthWindow(at.Year(), int(at.Month()))
		from, to = monthFrom, monthTo.AddDate(0, 0, -1)
	}

	occupied, err := s.reservations.CountOccupiedRoomsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	total, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := s.reservations.ListRoomOccupancy(ctx, today())
	if err != nil {
		return nil, err
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(occupied) / float64(total) * 100))
	}

	return &OccupancyReport{
		From:           from,
		To:             to,
		OccupiedRooms:  occupied,
		AvailableRooms: total - occupied,
		TotalRooms:     total,
		OccupancyRate:  rate,
		Rooms:          rooms,
	}, nil
}

// EventsReport summarizes a month of events and how full they ran.
type EventsReport struct {
	Year           int                         `json:"year"`
	Month          int                         `json:"month"`
	TotalEvents    int64                       `json:"total_events"`
	TotalSeats     int64                       `json:"total_seats"`
	TotalAttendees int64                       `json:"total_attendees"`
	AttendanceRate int                         `json:"attendance_rate"`
	Detail         []repository.EventWithStats `json:"detail"`
}

func (s *Service) Events(ctx context.Context, year, month int) (*EventsReport, error) {
	from, to := monthWindow(year, month)

	stats, err := s.events.AttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	detail, err := s.events.ListWithStatsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rate := 0
	if stats.Seats > 0 {
		rate = int(math.Round(float64(stats.Attendees) / float64(stats.Seats) * 100))
	}

	return &EventsReport{
		Year:           year,
		Month:          month,
		TotalEvents:    stats.Events,
		TotalSeats:     stats.Seats,
		TotalAttendees: stats.Attendees,
		AttendanceRate: rate,
		Detail:         detail,
	}, nil
}

// HotelInfo is the public summary card.
type HotelInfo struct {
	TotalRoomsAvailable int64  `json:"total_rooms_available"`
	UpcomingEvents      int64  `json:"upcoming_events"`
	HotelName           string `json:"hotel_name"`
	Description         string `json:"description"`
}

func (s *Service) HotelInfo(ctx context.Context) (*HotelInfo, error) {
	at := today()

	available, err := s.rooms.CountByStatus(ctx, domain.RoomAvailable)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.events.CountBetween(ctx, at, at.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	return &HotelInfo{
		TotalRoomsAvailable: available,
		UpcomingEvents:      upcoming,
		HotelName:           "Hotel Paradise",
		Description:         "El mejor hotel para tu estadía perfecta",
	}, nil
}
