package admin

import (
	"time"

	"nam3land/internal/domain"
)

type CreateAgentRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type UpdateAgentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AgentResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	AgentStatus string `json:"agent_status"`
	CreatedAt   string `json:"created_at"`
}

func toAgentResponse(u *domain.User) AgentResponse {
	return AgentResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		AgentStatus: string(u.AgentStatus),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
