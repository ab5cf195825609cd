package reservation

import (
	"context"
	"time"

	"nam3land/internal/domain"
	"nam3land/internal/repository"
)

// ReservationRepository defines the storage operations the lifecycle needs.
type ReservationRepository interface {
	Create(ctx context.Context, resv *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CountActive(ctx context.Context, customerID, propertyID int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]repository.ReservationDetails, error)
	ListByAgent(ctx context.Context, agentID *int64) ([]repository.ReservationDetails, error)
	ListReport(ctx context.Context) ([]repository.ReservationDetails, error)
	Delete(ctx context.Context, id int64) error
	ExecTransition(ctx context.Context, reservationID int64,
		decide func(resv *domain.Reservation, prop *domain.Property) (propertyChanged bool, err error),
	) (*domain.Reservation, *domain.Property, error)
}

// PropertyRepository defines the property reads used at request time.
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// NotificationSender is the best-effort side channel. Implementations must
// never be load-bearing: errors are logged and dropped by the caller.
type NotificationSender interface {
	NotifyReservationPending(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error
	NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64, propertyName string, at time.Time) error
	NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, propertyName, reason string) error
}

// ConversationStarter opens the customer/agent conversation that accompanies
// a new viewing request.
type ConversationStarter interface {
	EnsureConversation(ctx context.Context, customerID, agentID int64, propertyID *int64) (*domain.Conversation, error)
}
