package repository

import (
	"context"
	"errors"
	"time"

	"nam3land/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetConversation finds the conversation for a (customer, agent, property)
// triple. Returns nil without error when none exists.
func (r *ChatRepository) GetConversation(ctx context.Context, customerID, agentID int64, propertyID *int64) (*domain.Conversation, error) {
	q := r.db.WithContext(ctx).
		Where("customer_id = ? AND agent_id = ?", customerID, agentID)

	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	} else {
		q = q.Where("property_id IS NULL")
	}

	var conv domain.Conversation
	err := q.First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns a user's conversations, most recent activity
// first. The user may appear as customer or agent.
func (r *ChatRepository) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("customer_id = ? OR agent_id = ?", userID, userID).
		Order("last_message_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *ChatRepository) CountConversations(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("customer_id = ? OR agent_id = ?", userID, userID).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// TouchConversation updates the denormalised last-message preview.
func (r *ChatRepository) TouchConversation(ctx context.Context, conversationID int64, lastMessage string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", conversationID).
		Updates(map[string]any{
			"last_message":      lastMessage,
			"last_message_time": time.Now(),
		}).Error
}

func (r *ChatRepository) UpdateConversationStatus(ctx context.Context, conversationID int64, status domain.ConversationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", conversationID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
