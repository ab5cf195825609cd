package reservation

import (
	"time"

	"nam3land/internal/repository"
)

type CreateReservationRequest struct {
	PropertyID      int64     `json:"property_id" binding:"required"`
	ReservationTime time.Time `json:"reservation_time" binding:"required"`
	Notes           string    `json:"notes"`
}

type TransitionRequest struct {
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type ReservationResponse struct {
	ID              int64  `json:"id"`
	CustomerID      int64  `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	PropertyID      int64  `json:"property_id"`
	PropertyName    string `json:"property_name"`
	AgentID         int64  `json:"agent_id"`
	ReservationTime string `json:"reservation_time"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func toReservationResponse(d repository.ReservationDetails) ReservationResponse {
	var notes, rejectionReason string
	if d.Notes != nil {
		notes = *d.Notes
	}
	if d.RejectionReason != nil {
		rejectionReason = *d.RejectionReason
	}

	return ReservationResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		CustomerName:    d.CustomerName,
		PropertyID:      d.PropertyID,
		PropertyName:    d.PropertyName,
		AgentID:         d.AgentID,
		ReservationTime: d.ReservationTime.Format(time.RFC3339),
		Status:          d.Status,
		Notes:           notes,
		RejectionReason: rejectionReason,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}
}

func toReservationResponses(rows []repository.ReservationDetails) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, toReservationResponse(d))
	}
	return out
}
