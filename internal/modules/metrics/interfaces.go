package metrics

import (
	"context"
	"time"

	"nam3land/internal/domain"
)

type ReservationCounter interface {
	CountCreatedSince(ctx context.Context, since time.Time) (total, confirmed int64, err error)
	CountActiveByCustomer(ctx context.Context, customerID int64) (int64, error)
	CountByAgentAndStatus(ctx context.Context, agentID int64, status domain.ReservationStatus) (int64, error)
}

type PropertyCounter interface {
	Count(ctx context.Context) (int64, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}

type ConversationCounter interface {
	CountConversations(ctx context.Context, userID int64) (int64, error)
}

type NotificationCounter interface {
	CountUnread(ctx context.Context, userID int64) (int64, error)
}
