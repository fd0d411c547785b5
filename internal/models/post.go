package models

import (
	"time"

	"github.com/lib/pq" // Необхідний для pq.StringArray
)

// Post represents a feed entry: a single image or video with a caption.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AuthorID  uint   `gorm:"not null;index" json:"author_id"`
	Author    User   `gorm:"foreignKey:AuthorID" json:"-"`
	MediaURL  string `gorm:"size:500;not null" json:"media_url"`
	// MediaType is either "image" or "video".
	MediaType string         `gorm:"size:10;default:image" json:"media_type"`
	Caption   string         `gorm:"type:text" json:"caption"`
	Hashtags  pq.StringArray `gorm:"type:text[]" json:"hashtags"`
	CreatedAt time.Time      `json:"created_at"`

	LikedBy []User `gorm:"many2many:post_likes" json:"-"`
	SavedBy []User `gorm:"many2many:post_saves" json:"-"`
}

// Comment is a user comment attached to a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow links a follower to the user they follow.
// The composite unique index guarantees a pair can exist at most once.
type Follow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
}
