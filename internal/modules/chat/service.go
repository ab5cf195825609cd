package chat

import (
	"context"
	"fmt"
	"strings"

	"nam3land/internal/domain"
)

type Service struct {
	store      ChatStore
	users      UserReader
	properties PropertyReader
	notifier   MessageNotifier
}

func NewService(store ChatStore, users UserReader, properties PropertyReader, notifier MessageNotifier) *Service {
	return &Service{
		store:      store,
		users:      users,
		properties: properties,
		notifier:   notifier,
	}
}

// EnsureConversation returns the conversation for a (customer, agent,
// property) triple, creating it when it does not exist yet. A new viewing
// request calls this so the customer and the handling agent always have an
// open channel.
func (s *Service) EnsureConversation(ctx context.Context, customerID, agentID int64, propertyID *int64) (*domain.Conversation, error) {
	existing, err := s.store.GetConversation(ctx, customerID, agentID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		CustomerID: customerID,
		AgentID:    agentID,
		PropertyID: propertyID,
		Status:     domain.ConversationActive,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (s *Service) SendMessage(ctx context.Context, senderID int64, senderRole domain.UserRole, conversationID int64, req SendMessageRequest) (*domain.ChatMessage, error) {
	content := strings.TrimSpace(req.Message)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return nil, ErrConversationNotFound
	}
	if conv.CustomerID != senderID && conv.AgentID != senderID {
		return nil, ErrNotParticipant
	}
	if conv.Status == domain.ConversationClosed {
		return nil, ErrConversationClosed
	}

	msg := &domain.ChatMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderRole:     senderRole,
		Message:        content,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	_ = s.store.TouchConversation(ctx, conversationID, content)

	sender, _ := s.users.GetByID(ctx, senderID)
	msg.Sender = sender

	return msg, nil
}

func (s *Service) GetConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return nil, ErrConversationNotFound
	}
	if conv.CustomerID != userID && conv.AgentID != userID {
		return nil, ErrNotParticipant
	}
	s.enrichConversation(ctx, conv)
	return conv, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64, limit, offset int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	convs, err := s.store.ListConversations(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	for i := range convs {
		s.enrichConversation(ctx, &convs[i])
	}
	return convs, nil
}

func (s *Service) ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.ChatMessage, error) {
	if !s.IsParticipant(ctx, userID, conversationID) {
		return nil, ErrNotParticipant
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	msgs, err := s.store.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		u, _ := s.users.GetByID(ctx, msgs[i].SenderID)
		msgs[i].Sender = u
	}
	return msgs, nil
}

func (s *Service) CloseConversation(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return ErrConversationNotFound
	}
	if conv.CustomerID != userID && conv.AgentID != userID {
		return ErrNotParticipant
	}
	return s.store.UpdateConversationStatus(ctx, conversationID, domain.ConversationClosed)
}

func (s *Service) IsParticipant(ctx context.Context, userID, conversationID int64) bool {
	conv, err := s.store.GetConversationByID(ctx, conversationID)
	if err != nil || conv == nil {
		return false
	}
	return conv.CustomerID == userID || conv.AgentID == userID
}

// RecipientID returns the other participant of a conversation.
func (s *Service) RecipientID(conv *domain.Conversation, senderID int64) int64 {
	if conv.CustomerID == senderID {
		return conv.AgentID
	}
	return conv.CustomerID
}

// NotifyIfMissed writes an in-app notification for a message the recipient
// did not receive over a live socket. Called by the handler after the
// websocket delivery attempt.
func (s *Service) NotifyIfMissed(ctx context.Context, recipientID int64, msg *domain.ChatMessage) error {
	senderName := "Someone"
	if msg.Sender != nil {
		senderName = msg.Sender.Name
	}
	return s.notifier.NotifyNewMessage(ctx, recipientID, msg.ConversationID, senderName, msg.Message)
}

func (s *Service) enrichConversation(ctx context.Context, conv *domain.Conversation) {
	conv.Customer, _ = s.users.GetByID(ctx, conv.CustomerID)
	conv.Agent, _ = s.users.GetByID(ctx, conv.AgentID)
	if conv.PropertyID != nil {
		conv.Property, _ = s.properties.GetByID(ctx, *conv.PropertyID)
	}
}
