package repository

import (
	"context"
	"time"

	"nam3land/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Location       *string   `gorm:"column:location"`
	Price          float64   `gorm:"column:price"`
	Beds           int       `gorm:"column:beds"`
	Baths          int       `gorm:"column:baths"`
	Sqft           int       `gorm:"column:sqft"`
	Image          *string   `gorm:"column:image"`
	Description    *string   `gorm:"column:description"`
	Status         string    `gorm:"column:status"`
	AgentID        *int64    `gorm:"column:agent_id"`
	UnitsTotal     *int      `gorm:"column:units_total"`
	UnitsAvailable *int      `gorm:"column:units_available"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var location, image, description string
	if m.Location != nil {
		location = *m.Location
	}
	if m.Image != nil {
		image = *m.Image
	}
	if m.Description != nil {
		description = *m.Description
	}

	return &domain.Property{
		ID:             m.ID,
		Name:           m.Name,
		Location:       location,
		Price:          m.Price,
		Beds:           m.Beds,
		Baths:          m.Baths,
		Sqft:           m.Sqft,
		Image:          image,
		Description:    description,
		Status:         domain.PropertyStatus(m.Status),
		AgentID:        m.AgentID,
		UnitsTotal:     m.UnitsTotal,
		UnitsAvailable: m.UnitsAvailable,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var location, image, description *string
	if p.Location != "" {
		v := p.Location
		location = &v
	}
	if p.Image != "" {
		v := p.Image
		image = &v
	}
	if p.Description != "" {
		v := p.Description
		description = &v
	}

	return propertyModel{
		ID:             p.ID,
		Name:           p.Name,
		Location:       location,
		Price:          p.Price,
		Beds:           p.Beds,
		Baths:          p.Baths,
		Sqft:           p.Sqft,
		Image:          image,
		Description:    description,
		Status:         string(p.Status),
		AgentID:        p.AgentID,
		UnitsTotal:     p.UnitsTotal,
		UnitsAvailable: p.UnitsAvailable,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

// List returns properties newest-first. agentID filters to one agent's
// portfolio when non-nil.
func (r *PropertyRepository) List(ctx context.Context, agentID *int64) ([]domain.Property, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if agentID != nil {
		q = q.Where("agent_id = ?", *agentID)
	}

	var models []propertyModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	m.UpdatedAt = time.Now()

	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", m.ID).
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&propertyModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) AssignAgent(ctx context.Context, propertyID, agentID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", propertyID).
		Updates(map[string]any{
			"agent_id":   agentID,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetInventory writes the availability counter and the derived status.
// Range checks belong to the lifecycle logic, not here.
func (r *PropertyRepository) SetInventory(ctx context.Context, propertyID int64, unitsAvailable int, status domain.PropertyStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", propertyID).
		Updates(map[string]any{
			"units_available": unitsAvailable,
			"status":          string(status),
			"updated_at":      time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&propertyModel{}).Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
