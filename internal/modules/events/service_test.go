package events

import (
	"context"
	"testing"
	"time"

	"hotelparadise/internal/domain"
	"hotelparadise/internal/pkg/keymutex"
	"hotelparadise/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil {
		e.ID = 10 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, e *domain.Event) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) ListWithStats(ctx context.Context, userID int64) ([]repository.EventWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventWithStats), args.Error(1)
}

func (m *MockEventRepository) ListUpcomingWithStats(ctx context.Context, from time.Time) ([]repository.EventWithStats, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventWithStats), args.Error(1)
}

func (m *MockEventRepository) CountAttendees(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) CreateAttendee(ctx context.Context, a *domain.EventAttendee) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil {
		a.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockEventRepository) DeleteAttendee(ctx context.Context, eventID, userID int64) (int64, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) ListAttendeesWithDetails(ctx context.Context, eventID int64) ([]repository.AttendeeDetails, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttendeeDetails), args.Error(1)
}

func newTestService(repo *MockEventRepository) *Service {
	return NewService(repo, keymutex.New(), nil)
}

func sampleEvent(capacity int) *domain.Event {
	return &domain.Event{
		ID:          5,
		Title:       "Wine Tasting",
		Date:        time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
		Time:        "19:00",
		Location:    "Rooftop Bar",
		MaxCapacity: capacity,
	}
}

func TestService_Register_Success(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(sampleEvent(30), nil)
	repo.On("IsRegistered", ctx, int64(5), int64(1)).Return(false, nil)
	repo.On("CountAttendees", ctx, int64(5)).Return(int64(12), nil)
	repo.On("CreateAttendee", ctx, mock.AnythingOfType("*domain.EventAttendee")).Return(nil)

	a, err := svc.Register(ctx, 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), a.EventID)
	assert.Equal(t, int64(1), a.UserID)
	assert.False(t, a.RegisteredAt.IsZero())
	repo.AssertExpectations(t)
}

func TestService_Register_EventNotFound(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Register(ctx, 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "CreateAttendee", mock.Anything, mock.Anything)
}

func TestService_Register_Duplicate(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(sampleEvent(30), nil)
	repo.On("IsRegistered", ctx, int64(5), int64(1)).Return(true, nil)

	_, err := svc.Register(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	repo.AssertNotCalled(t, "CountAttendees", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateAttendee", mock.Anything, mock.Anything)
}

func TestService_Register_Full(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(5)).Return(sampleEvent(30), nil)
	repo.On("IsRegistered", ctx, int64(5), int64(1)).Return(false, nil)
	repo.On("CountAttendees", ctx, int64(5)).Return(int64(30), nil)

	_, err := svc.Register(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrEventFull)
	repo.AssertNotCalled(t, "CreateAttendee", mock.Anything, mock.Anything)
}

func TestService_Register_LastSeat(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	// 29 of 30 seats taken: the last one is still grantable.
	repo.On("GetByID", ctx, int64(5)).Return(sampleEvent(30), nil)
	repo.On("IsRegistered", ctx, int64(5), int64(1)).Return(false, nil)
	repo.On("CountAttendees", ctx, int64(5)).Return(int64(29), nil)
	repo.On("CreateAttendee", ctx, mock.AnythingOfType("*domain.EventAttendee")).Return(nil)

	_, err := svc.Register(ctx, 5, 1)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Withdraw_Success(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("DeleteAttendee", ctx, int64(5), int64(1)).Return(int64(1), nil)

	err := svc.Withdraw(ctx, 5, 1)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Withdraw_NotRegistered(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("DeleteAttendee", ctx, int64(5), int64(1)).Return(int64(0), nil)

	err := svc.Withdraw(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestService_CreateEvent_RejectsZeroCapacity(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, &domain.Event{Title: "Bad", MaxCapacity: 0})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateEvent_NotFound(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	e := sampleEvent(30)
	e.ID = 404
	repo.On("Update", ctx, e).Return(int64(0), nil)

	_, err := svc.UpdateEvent(ctx, e)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteEvent_NotFound(t *testing.T) {
	repo := new(MockEventRepository)
	svc := newTestService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(404)).Return(int64(0), nil)

	err := svc.DeleteEvent(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
