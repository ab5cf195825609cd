package admin

import (
	"context"
	"errors"
	"strings"

	"nam3land/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) ListAgents(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleAgent)
}

// CreateAgent provisions an agent account. Agents never self-register.
func (s *Service) CreateAgent(ctx context.Context, req CreateAgentRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	agent := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
		Name:         req.Name,
		Phone:        req.Phone,
		AgentStatus:  domain.AgentActive,
	}
	if err := s.users.Create(ctx, agent); err != nil {
		return nil, err
	}

	agent.PasswordHash = ""
	return agent, nil
}

func (s *Service) UpdateAgentStatus(ctx context.Context, agentID int64, status string) error {
	switch domain.AgentStatus(status) {
	case domain.AgentActive, domain.AgentInactive:
	default:
		return ErrValidation
	}

	if err := s.users.UpdateAgentStatus(ctx, agentID, domain.AgentStatus(status)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAgentNotFound
		}
		return err
	}
	return nil
}
