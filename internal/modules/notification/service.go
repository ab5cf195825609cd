package notification

import (
	"context"
	"fmt"
	"time"

	"nam3land/internal/domain"
)

const feedLimit = 50

type Store interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, notificationID, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, notificationID, userID int64) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, n *domain.Notification) error {
	return s.store.Create(ctx, n)
}

// GetUserNotifications returns the newest notifications first, capped at the
// feed limit, together with the unread count.
func (s *Service) GetUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, int64, error) {
	items, err := s.store.GetByUserID(ctx, userID, feedLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.store.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllAsRead(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, notificationID, userID int64) error {
	return s.store.Delete(ctx, notificationID, userID)
}

func (s *Service) NotifyReservationPending(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error {
	return s.store.Create(ctx, &domain.Notification{
		UserID:      customerID,
		Type:        domain.NotifReservationPending,
		Title:       "Viewing request received",
		Description: fmt.Sprintf("Your viewing request for %s on %s is waiting for confirmation", propertyName, at.Format("02 Jan 2006 15:04")),
		RelatedID:   &reservationID,
	})
}

func (s *Service) NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error {
	return s.store.Create(ctx, &domain.Notification{
		UserID:      customerID,
		Type:        domain.NotifReservationConfirmed,
		Title:       "Reservation confirmed",
		Description: fmt.Sprintf("Your reservation for %s on %s has been confirmed", propertyName, at.Format("02 Jan 2006 15:04")),
		RelatedID:   &reservationID,
	})
}

func (s *Service) NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, propertyName, reason string) error {
	description := fmt.Sprintf("Your reservation for %s has been cancelled", propertyName)
	if reason != "" {
		description = fmt.Sprintf("%s: %s", description, reason)
	}
	return s.store.Create(ctx, &domain.Notification{
		UserID:      customerID,
		Type:        domain.NotifReservationCancelled,
		Title:       "Reservation cancelled",
		Description: description,
		RelatedID:   &reservationID,
	})
}

func (s *Service) NotifyNewMessage(ctx context.Context, userID, conversationID int64, senderName, preview string) error {
	if len(preview) > 80 {
		preview = preview[:77] + "..."
	}
	return s.store.Create(ctx, &domain.Notification{
		UserID:      userID,
		Type:        domain.NotifNewMessage,
		Title:       fmt.Sprintf("New message from %s", senderName),
		Description: preview,
		RelatedID:   &conversationID,
	})
}
