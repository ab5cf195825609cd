package property

import (
	"time"

	"nam3land/internal/domain"
)

type CreatePropertyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Beds        int     `json:"beds"`
	Baths       int     `json:"baths"`
	Sqft        int     `json:"sqft"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	AgentID     *int64  `json:"agent_id"`
	UnitsTotal  *int    `json:"units_total"`
}

type UpdatePropertyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Beds        int     `json:"beds"`
	Baths       int     `json:"baths"`
	Sqft        int     `json:"sqft"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	AgentID     *int64  `json:"agent_id"`
	UnitsTotal  *int    `json:"units_total"`
}

type AssignAgentRequest struct {
	AgentID int64 `json:"agent_id" binding:"required"`
}

type PropertyResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Location       string  `json:"location,omitempty"`
	Price          float64 `json:"price"`
	Beds           int     `json:"beds"`
	Baths          int     `json:"baths"`
	Sqft           int     `json:"sqft"`
	Image          string  `json:"image,omitempty"`
	Description    string  `json:"description,omitempty"`
	Status         string  `json:"status"`
	AgentID        *int64  `json:"agent_id,omitempty"`
	UnitsTotal     *int    `json:"units_total,omitempty"`
	UnitsAvailable *int    `json:"units_available,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func toPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Location:       p.Location,
		Price:          p.Price,
		Beds:           p.Beds,
		Baths:          p.Baths,
		Sqft:           p.Sqft,
		Image:          p.Image,
		Description:    p.Description,
		Status:         string(p.Status),
		AgentID:        p.AgentID,
		UnitsTotal:     p.UnitsTotal,
		UnitsAvailable: p.UnitsAvailable,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}
