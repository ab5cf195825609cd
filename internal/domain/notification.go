package domain

import "time"

type NotificationType string

const (
	NotifReservationPending   NotificationType = "reservation_pending"
	NotifReservationConfirmed NotificationType = "reservation_confirmed"
	NotifReservationCancelled NotificationType = "reservation_cancelled"
	NotifNewMessage           NotificationType = "message"
)

type Notification struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	RelatedID   *int64           `json:"related_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
