package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleAgent    UserRole = "agent"
	RoleCustomer UserRole = "customer"
)

type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
)

type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email" validate:"required,email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone,omitempty"`
	AgentStatus  AgentStatus `json:"agent_status,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
