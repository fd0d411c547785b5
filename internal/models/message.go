package models

import "gorm.io/gorm"

// Message represents a persisted direct message between two users.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields;
// CreatedAt is the ordering authority for chat history.
type Message struct {
	gorm.Model

	// SenderID is the ID of the user who sent the message.
	SenderID uint `gorm:"not null;index:idx_pair" json:"sender"`
	// ReceiverID is the ID of the user on the other side of the conversation.
	ReceiverID uint `gorm:"not null;index:idx_pair" json:"receiver"`
	// Content is the free-text body of the message.
	Content string `gorm:"type:text;not null" json:"content"`

	// SenderEmail is resolved at read time for history responses; never stored.
	SenderEmail string `gorm:"-" json:"sender_email,omitempty"`
}
