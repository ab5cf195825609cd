package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// IsActive reports whether the status still occupies the (customer, property)
// pair: only one pending or confirmed reservation may exist per pair.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type Reservation struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customer_id" validate:"required"`
	PropertyID      int64             `json:"property_id" validate:"required"`
	AgentID         int64             `json:"agent_id"`
	ReservationTime time.Time         `json:"reservation_time" validate:"required"`
	Status          ReservationStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Customer *User     `json:"customer,omitempty" gorm:"-"`
	Property *Property `json:"property,omitempty" gorm:"-"`
}
