package chat

import (
	"time"

	"nam3land/internal/domain"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type UserBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type PropertyBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ConversationResponse struct {
	ID              int64          `json:"id"`
	Customer        *UserBrief     `json:"customer,omitempty"`
	Agent           *UserBrief     `json:"agent,omitempty"`
	Property        *PropertyBrief `json:"property,omitempty"`
	Status          string         `json:"status"`
	LastMessage     string         `json:"last_message,omitempty"`
	LastMessageTime string         `json:"last_message_time"`
	CreatedAt       string         `json:"created_at"`
}

type MessageResponse struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	SenderRole     string     `json:"sender_role"`
	Message        string     `json:"message"`
	CreatedAt      string     `json:"created_at"`
	Sender         *UserBrief `json:"sender,omitempty"`
}

func toUserBrief(u *domain.User) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{
		ID:   u.ID,
		Name: u.Name,
		Role: string(u.Role),
	}
}

func toConversationResponse(c *domain.Conversation) *ConversationResponse {
	if c == nil {
		return nil
	}

	resp := &ConversationResponse{
		ID:              c.ID,
		Customer:        toUserBrief(c.Customer),
		Agent:           toUserBrief(c.Agent),
		Status:          string(c.Status),
		LastMessage:     c.LastMessage,
		LastMessageTime: c.LastMessageTime.Format(time.RFC3339),
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.Property != nil {
		resp.Property = &PropertyBrief{ID: c.Property.ID, Name: c.Property.Name}
	}
	return resp
}

func toMessageResponse(m *domain.ChatMessage) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderRole:     string(m.SenderRole),
		Message:        m.Message,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		Sender:         toUserBrief(m.Sender),
	}
}
