package reservation

import (
	"context"
	"errors"
	"time"

	"nam3land/internal/domain"
	"nam3land/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	properties   PropertyRepository
	notifs       NotificationSender
	convs        ConversationStarter
}

func NewService(
	reservations ReservationRepository,
	properties PropertyRepository,
	notifs NotificationSender,
	convs ConversationStarter,
) *Service {
	return &Service{
		reservations: reservations,
		properties:   properties,
		notifs:       notifs,
		convs:        convs,
	}
}

// RequestReservation creates a pending viewing request. Inventory is not
// touched here: a unit is only consumed when an agent confirms.
func (s *Service) RequestReservation(ctx context.Context, customerID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	if req.ReservationTime.Before(time.Now()) {
		return nil, ErrValidation
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if prop.AgentID == nil {
		return nil, ErrPropertyUnassigned
	}

	active, err := s.reservations.CountActive(ctx, customerID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrDuplicateActiveReservation
	}

	resv := &domain.Reservation{
		CustomerID:      customerID,
		PropertyID:      req.PropertyID,
		AgentID:         *prop.AgentID,
		ReservationTime: req.ReservationTime,
		Status:          domain.ReservationPending,
		Notes:           req.Notes,
	}

	if err := s.reservations.Create(ctx, resv); err != nil {
		// The partial unique index catches the race the CountActive check
		// cannot: two simultaneous requests for the same pair.
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_active_reservation" {
				return nil, ErrDuplicateActiveReservation
			}
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReservationPending(ctx, customerID, resv.ID, prop.Name, resv.ReservationTime)
	}

	// Every viewing request opens a line to the handling agent.
	if s.convs != nil {
		pid := req.PropertyID
		_, _ = s.convs.EnsureConversation(ctx, customerID, *prop.AgentID, &pid)
	}

	return resv, nil
}

// TransitionStatus moves a reservation through the state machine. The status
// write and the inventory write happen in one transaction under row locks;
// notifications go out only after that commits.
func (s *Service) TransitionStatus(ctx context.Context, actor Actor, reservationID int64, newStatus domain.ReservationStatus, reason string) (*domain.Reservation, *domain.Property, error) {
	switch newStatus {
	case domain.ReservationPending, domain.ReservationConfirmed,
		domain.ReservationCancelled, domain.ReservationCompleted:
	default:
		return nil, nil, ErrValidation
	}

	var propName string
	resv, prop, err := s.reservations.ExecTransition(ctx, reservationID,
		func(resv *domain.Reservation, prop *domain.Property) (bool, error) {
			propName = prop.Name
			return applyTransition(resv, prop, newStatus, actor, reason)
		})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if s.notifs != nil {
		switch resv.Status {
		case domain.ReservationConfirmed:
			_ = s.notifs.NotifyReservationConfirmed(ctx, resv.CustomerID, resv.ID, propName, resv.ReservationTime)
		case domain.ReservationCancelled:
			_ = s.notifs.NotifyReservationCancelled(ctx, resv.CustomerID, resv.ID, propName, resv.RejectionReason)
		}
	}

	return resv, prop, nil
}

// DeleteReservation removes a resolved reservation owned by the caller.
// Pending requests stay on the books until an agent resolves them.
func (s *Service) DeleteReservation(ctx context.Context, requestingCustomerID, reservationID int64) error {
	resv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if resv.CustomerID != requestingCustomerID {
		return ErrUnauthorized
	}
	if resv.Status == domain.ReservationPending {
		return ErrCannotDeletePending
	}

	// Inventory was already reconciled by whatever transition produced the
	// current status; deletion is bookkeeping only.
	return s.reservations.Delete(ctx, reservationID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]repository.ReservationDetails, error) {
	return s.reservations.ListByCustomer(ctx, customerID)
}

func (s *Service) ListByAgent(ctx context.Context, agentID int64) ([]repository.ReservationDetails, error) {
	return s.reservations.ListByAgent(ctx, &agentID)
}

func (s *Service) ListAll(ctx context.Context) ([]repository.ReservationDetails, error) {
	return s.reservations.ListByAgent(ctx, nil)
}

func (s *Service) Report(ctx context.Context) ([]repository.ReservationDetails, error) {
	return s.reservations.ListReport(ctx)
}
