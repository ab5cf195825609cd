package domain

import "time"

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// Conversation links one customer with the agent handling a property.
// At most one conversation exists per (customer, agent, property) triple.
type Conversation struct {
	ID         int64              `json:"id" gorm:"primaryKey"`
	CustomerID int64              `json:"customer_id" gorm:"not null"`
	AgentID    int64              `json:"agent_id" gorm:"not null"`
	PropertyID *int64             `json:"property_id,omitempty"`
	Status     ConversationStatus `json:"status" gorm:"default:'active'"`

	// Denormalised preview fields, used to sort the conversation list.
	LastMessage     string    `json:"last_message,omitempty"`
	LastMessageTime time.Time `json:"last_message_time" gorm:"default:CURRENT_TIMESTAMP"`

	CreatedAt time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`

	// Filled by the service, not stored.
	Customer *User     `json:"customer,omitempty" gorm:"-"`
	Agent    *User     `json:"agent,omitempty" gorm:"-"`
	Property *Property `json:"property,omitempty" gorm:"-"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ChatMessage struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	ConversationID int64     `json:"conversation_id" gorm:"not null;index"`
	SenderID       int64     `json:"sender_id" gorm:"not null"`
	SenderRole     UserRole  `json:"sender_role" gorm:"not null"`
	Message        string    `json:"message" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"default:CURRENT_TIMESTAMP"`

	Sender *User `json:"sender,omitempty" gorm:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
