package property

import (
	"context"
	"errors"

	"nam3land/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	properties PropertyRepository
	users      UserRepository
}

func NewService(properties PropertyRepository, users UserRepository) *Service {
	return &Service{properties: properties, users: users}
}

func (s *Service) Create(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	if req.UnitsTotal != nil && *req.UnitsTotal < 0 {
		return nil, ErrValidation
	}

	if req.AgentID != nil {
		if err := s.checkAgent(ctx, *req.AgentID); err != nil {
			return nil, err
		}
	}

	p := &domain.Property{
		Name:        req.Name,
		Location:    req.Location,
		Price:       req.Price,
		Beds:        req.Beds,
		Baths:       req.Baths,
		Sqft:        req.Sqft,
		Image:       req.Image,
		Description: req.Description,
		AgentID:     req.AgentID,
		UnitsTotal:  req.UnitsTotal,
	}

	// A new listing starts fully available; the lifecycle owns every later
	// change to units_available.
	if req.UnitsTotal != nil {
		avail := *req.UnitsTotal
		p.UnitsAvailable = &avail
		if avail > 0 {
			p.Status = domain.PropertyAvailable
		} else {
			p.Status = domain.PropertyReserved
		}
	} else {
		p.Status = domain.PropertyAvailable
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, agentID *int64) ([]domain.Property, error) {
	return s.properties.List(ctx, agentID)
}

// Update edits listing metadata. Raising or lowering units_total keeps the
// consumed share: available = new total - currently consumed, floored at 0.
func (s *Service) Update(ctx context.Context, id int64, req UpdatePropertyRequest) (*domain.Property, error) {
	if req.UnitsTotal != nil && *req.UnitsTotal < 0 {
		return nil, ErrValidation
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AgentID != nil {
		if err := s.checkAgent(ctx, *req.AgentID); err != nil {
			return nil, err
		}
	}

	p := &domain.Property{
		ID:          id,
		Name:        req.Name,
		Location:    req.Location,
		Price:       req.Price,
		Beds:        req.Beds,
		Baths:       req.Baths,
		Sqft:        req.Sqft,
		Image:       req.Image,
		Description: req.Description,
		Status:      current.Status,
		AgentID:     req.AgentID,
		UnitsTotal:  req.UnitsTotal,
		CreatedAt:   current.CreatedAt,
	}

	if req.UnitsTotal != nil {
		consumed := 0
		if current.TracksUnits() && current.UnitsAvailable != nil {
			consumed = *current.UnitsTotal - *current.UnitsAvailable
		}
		avail := *req.UnitsTotal - consumed
		if avail < 0 {
			avail = 0
		}
		p.UnitsAvailable = &avail
		if avail > 0 {
			p.Status = domain.PropertyAvailable
		} else {
			p.Status = domain.PropertyReserved
		}
	}

	if err := s.properties.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) AssignAgent(ctx context.Context, propertyID, agentID int64) error {
	if err := s.checkAgent(ctx, agentID); err != nil {
		return err
	}

	if err := s.properties.AssignAgent(ctx, propertyID, agentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) checkAgent(ctx context.Context, agentID int64) error {
	u, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	if u.Role != domain.RoleAgent {
		return ErrNotAnAgent
	}
	return nil
}
