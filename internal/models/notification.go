package models

import "time"

// Notification types derived from reaction/comment mutations.
const (
	NotificationReaction = "reaction"
	NotificationComment  = "comment"
	NotificationReply    = "reply"
)

// Notification records one user's action on another user's content
// (PostgreSQL). For a given (recipient, sender, type, post) tuple at most one
// unread row may exist at a time; the rule is time-boxed by read state, not a
// permanent uniqueness constraint, so it lives in the repository's
// query-before-insert rather than a database index.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:20;index"`
	SenderID     uint      `json:"sender" gorm:"index"`
	RecipientID  uint      `json:"recipient" gorm:"index"`
	PostID       string    `json:"post" gorm:"size:24;index"` // Mongo ObjectID hex
	CommentID    string    `json:"comment,omitempty" gorm:"size:24"`
	ReactionType string    `json:"reactionType,omitempty" gorm:"size:10"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}
