package repository

import (
	"context"
	"time"

	"nam3land/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	CustomerID      int64     `gorm:"column:customer_id"`
	PropertyID      int64     `gorm:"column:property_id"`
	AgentID         int64     `gorm:"column:agent_id"`
	ReservationTime time.Time `gorm:"column:reservation_time"`
	Status          string    `gorm:"column:status"`
	Notes           *string   `gorm:"column:notes"`
	RejectionReason *string   `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var notes, rejectionReason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.RejectionReason != nil {
		rejectionReason = *m.RejectionReason
	}

	return &domain.Reservation{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		PropertyID:      m.PropertyID,
		AgentID:         m.AgentID,
		ReservationTime: m.ReservationTime,
		Status:          domain.ReservationStatus(m.Status),
		Notes:           notes,
		RejectionReason: rejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var notes, rejectionReason *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}
	if r.RejectionReason != "" {
		v := r.RejectionReason
		rejectionReason = &v
	}

	return reservationModel{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		PropertyID:      r.PropertyID,
		AgentID:         r.AgentID,
		ReservationTime: r.ReservationTime,
		Status:          string(r.Status),
		Notes:           notes,
		RejectionReason: rejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, resv *domain.Reservation) error {
	m := toReservationModel(resv)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*resv = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// CountActive counts pending/confirmed reservations for a (customer, property)
// pair. At most one may exist; the partial unique index idx_one_active_reservation
// enforces the same rule inside Postgres against concurrent creates.
func (r *ReservationRepository) CountActive(ctx context.Context, customerID, propertyID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("customer_id = ? AND property_id = ? AND status IN ?",
			customerID, propertyID,
			[]string{string(domain.ReservationPending), string(domain.ReservationConfirmed)}).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// ReservationDetails is a reservation row joined with the property and
// customer names the dashboards display.
type ReservationDetails struct {
	ID              int64     `gorm:"column:id"`
	CustomerID      int64     `gorm:"column:customer_id"`
	CustomerName    string    `gorm:"column:customer_name"`
	PropertyID      int64     `gorm:"column:property_id"`
	PropertyName    string    `gorm:"column:property_name"`
	AgentID         int64     `gorm:"column:agent_id"`
	ReservationTime time.Time `gorm:"column:reservation_time"`
	Status          string    `gorm:"column:status"`
	Notes           *string   `gorm:"column:notes"`
	RejectionReason *string   `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

const reservationDetailsSelect = `
SELECT r.id, r.customer_id, COALESCE(u.name, '') AS customer_name,
       r.property_id, COALESCE(p.name, '') AS property_name,
       r.agent_id, r.reservation_time, r.status, r.notes, r.rejection_reason,
       r.created_at
FROM reservations r
LEFT JOIN users u ON u.id = r.customer_id
LEFT JOIN properties p ON p.id = r.property_id
`

// ListByCustomer returns the operational view: upcoming first.
func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	q := reservationDetailsSelect + `WHERE r.customer_id = ? ORDER BY r.reservation_time ASC`
	if err := r.db.WithContext(ctx).Raw(q, customerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByAgent returns the operational view for one agent, or for everyone
// when agentID is nil (admin screen). Upcoming first.
func (r *ReservationRepository) ListByAgent(ctx context.Context, agentID *int64) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	q := reservationDetailsSelect
	var err error
	if agentID != nil {
		err = r.db.WithContext(ctx).
			Raw(q+`WHERE r.agent_id = ? ORDER BY r.reservation_time ASC`, *agentID).
			Scan(&rows).Error
	} else {
		err = r.db.WithContext(ctx).
			Raw(q + `ORDER BY r.reservation_time ASC`).
			Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListReport returns the audit view: resolved reservations only, most
// recently submitted first.
func (r *ReservationRepository) ListReport(ctx context.Context) ([]ReservationDetails, error) {
	var rows []ReservationDetails
	q := reservationDetailsSelect + `WHERE r.status IN (?, ?) ORDER BY r.created_at DESC`
	err := r.db.WithContext(ctx).
		Raw(q, string(domain.ReservationConfirmed), string(domain.ReservationCancelled)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&reservationModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReservationRepository) CountCreatedSince(ctx context.Context, since time.Time) (total, confirmed int64, err error) {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("created_at >= ?", since).
		Count(&total)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}

	tx = r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("created_at >= ? AND status = ?", since, string(domain.ReservationConfirmed)).
		Count(&confirmed)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	return total, confirmed, nil
}

func (r *ReservationRepository) CountActiveByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("customer_id = ? AND status IN ?", customerID,
			[]string{string(domain.ReservationPending), string(domain.ReservationConfirmed)}).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *ReservationRepository) CountByAgentAndStatus(ctx context.Context, agentID int64, status domain.ReservationStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("agent_id = ? AND status = ?", agentID, string(status)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// ExecTransition runs decide against the reservation and its property inside
// one transaction, holding row locks on both. Whatever decide mutates is
// written back before commit; when decide reports no property change the
// property row is left untouched. This is the single consistency boundary
// for status moves and inventory adjustments: a concurrent transition on the
// same reservation or property blocks until this one commits.
func (r *ReservationRepository) ExecTransition(
	ctx context.Context,
	reservationID int64,
	decide func(resv *domain.Reservation, prop *domain.Property) (propertyChanged bool, err error),
) (*domain.Reservation, *domain.Property, error) {
	var (
		outResv *domain.Reservation
		outProp *domain.Property
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rm reservationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rm, reservationID).Error; err != nil {
			return err
		}

		var pm propertyModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pm, rm.PropertyID).Error; err != nil {
			return err
		}

		resv := toDomainReservation(rm)
		prop := toDomainProperty(pm)

		propertyChanged, err := decide(resv, prop)
		if err != nil {
			return err
		}

		resv.UpdatedAt = time.Now()
		updatedResv := toReservationModel(resv)
		if err := tx.Model(&reservationModel{}).
			Where("id = ?", resv.ID).
			Updates(map[string]any{
				"status":           updatedResv.Status,
				"rejection_reason": updatedResv.RejectionReason,
				"updated_at":       updatedResv.UpdatedAt,
			}).Error; err != nil {
			return err
		}

		if propertyChanged {
			updatedProp := toPropertyModel(prop)
			if err := tx.Model(&propertyModel{}).
				Where("id = ?", prop.ID).
				Updates(map[string]any{
					"units_available": updatedProp.UnitsAvailable,
					"status":          updatedProp.Status,
					"updated_at":      time.Now(),
				}).Error; err != nil {
				return err
			}
			outProp = prop
		}

		outResv = resv
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outResv, outProp, nil
}
