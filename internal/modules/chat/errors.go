package chat

import "errors"

var (
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrConversationClosed   = errors.New("conversation is closed")
)
