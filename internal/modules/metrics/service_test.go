package metrics

import (
	"context"
	"testing"
	"time"

	"nam3land/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationCounter struct {
	mock.Mock
}

func (m *MockReservationCounter) CountCreatedSince(ctx context.Context, since time.Time) (int64, int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReservationCounter) CountActiveByCustomer(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationCounter) CountByAgentAndStatus(ctx context.Context, agentID int64, status domain.ReservationStatus) (int64, error) {
	args := m.Called(ctx, agentID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockPropertyCounter struct {
	mock.Mock
}

func (m *MockPropertyCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserCounter struct {
	mock.Mock
}

func (m *MockUserCounter) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockConversationCounter struct {
	mock.Mock
}

func (m *MockConversationCounter) CountConversations(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationCounter struct {
	mock.Mock
}

func (m *MockNotificationCounter) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_AdminDashboard_ConversionRate(t *testing.T) {
	reservations := new(MockReservationCounter)
	properties := new(MockPropertyCounter)
	users := new(MockUserCounter)
	properties.On("Count", mock.Anything).Return(int64(12), nil)
	users.On("CountByRole", mock.Anything, domain.RoleAgent).Return(int64(4), nil)
	reservations.On("CountCreatedSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Day() == 1 && since.Hour() == 0
	})).Return(int64(8), int64(3), nil)

	svc := NewService(reservations, properties, users, new(MockConversationCounter), new(MockNotificationCounter))
	m, err := svc.AdminDashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), m.TotalProperties)
	assert.Equal(t, int64(4), m.TotalAgents)
	assert.Equal(t, int64(8), m.ThisMonthReservations)
	assert.InDelta(t, 37.5, m.ConversionRate, 0.001)
}

func TestService_AdminDashboard_NoReservations(t *testing.T) {
	reservations := new(MockReservationCounter)
	properties := new(MockPropertyCounter)
	users := new(MockUserCounter)
	properties.On("Count", mock.Anything).Return(int64(0), nil)
	users.On("CountByRole", mock.Anything, domain.RoleAgent).Return(int64(0), nil)
	reservations.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(0), int64(0), nil)

	svc := NewService(reservations, properties, users, new(MockConversationCounter), new(MockNotificationCounter))
	m, err := svc.AdminDashboard(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, m.ConversionRate)
}

func TestService_AgentDashboard(t *testing.T) {
	reservations := new(MockReservationCounter)
	conversations := new(MockConversationCounter)
	reservations.On("CountByAgentAndStatus", mock.Anything, int64(2), domain.ReservationPending).Return(int64(5), nil)
	reservations.On("CountByAgentAndStatus", mock.Anything, int64(2), domain.ReservationConfirmed).Return(int64(9), nil)
	conversations.On("CountConversations", mock.Anything, int64(2)).Return(int64(7), nil)

	svc := NewService(reservations, new(MockPropertyCounter), new(MockUserCounter), conversations, new(MockNotificationCounter))
	m, err := svc.AgentDashboard(context.Background(), 2)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), m.PendingReservations)
	assert.Equal(t, int64(9), m.ConfirmedReservations)
	assert.Equal(t, int64(7), m.Conversations)
}

func TestService_CustomerDashboard(t *testing.T) {
	reservations := new(MockReservationCounter)
	notifications := new(MockNotificationCounter)
	reservations.On("CountActiveByCustomer", mock.Anything, int64(3)).Return(int64(2), nil)
	notifications.On("CountUnread", mock.Anything, int64(3)).Return(int64(4), nil)

	svc := NewService(reservations, new(MockPropertyCounter), new(MockUserCounter), new(MockConversationCounter), notifications)
	m, err := svc.CustomerDashboard(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), m.ActiveReservations)
	assert.Equal(t, int64(4), m.UnreadNotifications)
}
