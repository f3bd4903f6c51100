package repositories

import (
	"github.com/jestfeed/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, limit int) ([]models.Notification, error)
	HasUnread(recipientID, senderID uint, ntype, postID, commentID, reactionType string) (bool, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID, recipientID uint) error
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a notification repository backed
// by PostgreSQL.
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns the recipient's notifications newest-first, bounded
// to the most recent limit rows.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// HasUnread reports whether an unread notification already exists for the
// (recipient, sender, type, post) tuple. Reaction rows additionally match on
// the comment and reaction type, so a reaction of a different type, or on a
// different comment of the same post, is not suppressed. The check is
// deliberately scoped to unread rows, so a new notification may be created
// once the prior one is marked read.
func (r *postgresNotificationRepository) HasUnread(recipientID, senderID uint, ntype, postID, commentID, reactionType string) (bool, error) {
	q := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND sender_id = ? AND type = ? AND post_id = ? AND is_read = false",
			recipientID, senderID, ntype, postID)
	if ntype == models.NotificationReaction {
		q = q.Where("comment_id = ? AND reaction_type = ?", commentID, reactionType)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Count(&count).Error
	return count, err
}

// MarkAsRead flips a single notification to read, scoped to the requesting
// recipient. A notification owned by someone else matches no row and returns
// gorm.ErrRecordNotFound; callers map that to a plain not-found so ownership
// is never leaked.
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllAsRead flips every unread notification for the recipient in one
// statement.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = false", recipientID).Update("is_read", true).Error
}
