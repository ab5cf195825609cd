package admin

import (
	"context"

	"nam3land/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	UpdateAgentStatus(ctx context.Context, agentID int64, status domain.AgentStatus) error
}
