package models

import "time"

// Типи сповіщень.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
)

// Notification is created when someone likes, comments on, or follows
// another user's content. Self-actions never produce a notification.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Type       string    `gorm:"size:16;not null" json:"type"`
	PostID     *uint     `json:"post_id,omitempty"`
	Text       string    `gorm:"type:text" json:"text"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
