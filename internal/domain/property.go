package domain

import "time"

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyReserved  PropertyStatus = "reserved"
)

type Property struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name" validate:"required"`
	Location    string         `json:"location,omitempty"`
	Price       float64        `json:"price"`
	Beds        int            `json:"beds"`
	Baths       int            `json:"baths"`
	Sqft        int            `json:"sqft"`
	Image       string         `json:"image,omitempty"`
	Description string         `json:"description,omitempty"`
	Status      PropertyStatus `json:"status"`
	AgentID     *int64         `json:"agent_id,omitempty"`

	// Unit inventory. Both nil for single-listing properties; when set,
	// 0 <= UnitsAvailable <= UnitsTotal holds at all times.
	UnitsTotal     *int `json:"units_total,omitempty"`
	UnitsAvailable *int `json:"units_available,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TracksUnits reports whether the property carries multi-unit inventory.
func (p *Property) TracksUnits() bool {
	return p.UnitsTotal != nil
}
