package notification

import (
	"context"
	"time"

	"nam3land/internal/domain"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type notificationModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id"`
	Type        string    `gorm:"column:type"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	RelatedID   *int64    `gorm:"column:related_id"`
	IsRead      bool      `gorm:"column:is_read"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

// Migrate creates the notifications table; the schema is owned here rather
// than by internal/repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&notificationModel{})
}

func toDomainNotification(m notificationModel) domain.Notification {
	var description string
	if m.Description != nil {
		description = *m.Description
	}

	return domain.Notification{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        domain.NotificationType(m.Type),
		Title:       m.Title,
		Description: description,
		RelatedID:   m.RelatedID,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	var description *string
	if n.Description != "" {
		v := n.Description
		description = &v
	}

	m := notificationModel{
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Description: description,
		RelatedID:   n.RelatedID,
		IsRead:      n.IsRead,
		CreatedAt:   time.Now(),
	}

	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	n.ID = m.ID
	n.CreatedAt = m.CreatedAt
	return nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var models []notificationModel
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainNotification(m))
	}
	return out, nil
}

func (r *Repository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *Repository) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) MarkAllAsRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *Repository) Delete(ctx context.Context, notificationID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&notificationModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
