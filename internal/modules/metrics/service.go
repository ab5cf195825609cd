package metrics

import (
	"context"
	"math"
	"time"

	"nam3land/internal/domain"
)

type Service struct {
	reservations  ReservationCounter
	properties    PropertyCounter
	users         UserCounter
	conversations ConversationCounter
	notifications NotificationCounter
}

func NewService(
	reservations ReservationCounter,
	properties PropertyCounter,
	users UserCounter,
	conversations ConversationCounter,
	notifications NotificationCounter,
) *Service {
	return &Service{
		reservations:  reservations,
		properties:    properties,
		users:         users,
		conversations: conversations,
		notifications: notifications,
	}
}

type AdminMetrics struct {
	TotalProperties       int64   `json:"total_properties"`
	TotalAgents           int64   `json:"total_agents"`
	ThisMonthReservations int64   `json:"this_month_reservations"`
	ConversionRate        float64 `json:"conversion_rate"`
}

type AgentMetrics struct {
	PendingReservations   int64 `json:"pending_reservations"`
	ConfirmedReservations int64 `json:"confirmed_reservations"`
	Conversations         int64 `json:"conversations"`
}

type CustomerMetrics struct {
	ActiveReservations  int64 `json:"active_reservations"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

// AdminDashboard aggregates the month-to-date numbers. The conversion rate is
// the confirmed share of reservations created since the first of the month,
// as a percentage rounded to one decimal.
func (s *Service) AdminDashboard(ctx context.Context) (*AdminMetrics, error) {
	totalProperties, err := s.properties.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAgents, err := s.users.CountByRole(ctx, domain.RoleAgent)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	total, confirmed, err := s.reservations.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	var rate float64
	if total > 0 {
		rate = math.Round(float64(confirmed)/float64(total)*1000) / 10
	}

	return &AdminMetrics{
		TotalProperties:       totalProperties,
		TotalAgents:           totalAgents,
		ThisMonthReservations: total,
		ConversionRate:        rate,
	}, nil
}

func (s *Service) AgentDashboard(ctx context.Context, agentID int64) (*AgentMetrics, error) {
	pending, err := s.reservations.CountByAgentAndStatus(ctx, agentID, domain.ReservationPending)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.reservations.CountByAgentAndStatus(ctx, agentID, domain.ReservationConfirmed)
	if err != nil {
		return nil, err
	}
	conversations, err := s.conversations.CountConversations(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return &AgentMetrics{
		PendingReservations:   pending,
		ConfirmedReservations: confirmed,
		Conversations:         conversations,
	}, nil
}

func (s *Service) CustomerDashboard(ctx context.Context, customerID int64) (*CustomerMetrics, error) {
	active, err := s.reservations.CountActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notifications.CountUnread(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CustomerMetrics{
		ActiveReservations:  active,
		UnreadNotifications: unread,
	}, nil
}
