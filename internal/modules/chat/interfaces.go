package chat

import (
	"context"

	"nam3land/internal/domain"
)

type ChatStore interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversation(ctx context.Context, customerID, agentID int64, propertyID *int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.ChatMessage, error)
	TouchConversation(ctx context.Context, conversationID int64, lastMessage string) error
	UpdateConversationStatus(ctx context.Context, conversationID int64, status domain.ConversationStatus) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// MessageNotifier feeds the in-app notification list when a recipient misses
// a live delivery.
type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, userID, conversationID int64, senderName, preview string) error
}
