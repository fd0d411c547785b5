package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"connectly/backend/internal/models"
)

// --- Posts ---

func (s *Service) CreatePost(post *models.Post) error {
	return s.DB.Create(post).Error
}

func (s *Service) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.DB.Preload("Author").Preload("LikedBy").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get post %d: %v", id, err)
		return nil, err
	}
	return &post, nil
}

// ListPosts повертає стрічку: найновіші пости першими.
func (s *Service) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.Preload("Author").Preload("LikedBy").
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Service) DeletePost(id uint) error {
	return s.DB.Delete(&models.Post{}, id).Error
}

// ToggleLike перемикає лайк користувача на пості.
// Повертає новий стан та актуальну кількість лайків.
func (s *Service) ToggleLike(postID, userID uint) (bool, int64, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return false, 0, err
	}

	user := models.User{ID: userID}
	liked := false

	var existing int64
	if err := s.DB.Table("post_likes").
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&existing).Error; err != nil {
		return false, 0, err
	}

	if existing > 0 {
		if err := s.DB.Model(post).Association("LikedBy").Delete(&user); err != nil {
			return false, 0, err
		}
	} else {
		if err := s.DB.Model(post).Association("LikedBy").Append(&user); err != nil {
			return false, 0, err
		}
		liked = true
	}

	count := s.DB.Model(post).Association("LikedBy").Count()
	return liked, count, nil
}

// ToggleSave перемикає закладку користувача на пості.
func (s *Service) ToggleSave(postID, userID uint) (bool, error) {
	post, err := s.GetPostByID(postID)
	if err != nil {
		return false, err
	}

	user := models.User{ID: userID}

	var existing int64
	if err := s.DB.Table("post_saves").
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&existing).Error; err != nil {
		return false, err
	}

	if existing > 0 {
		return false, s.DB.Model(post).Association("SavedBy").Delete(&user)
	}
	return true, s.DB.Model(post).Association("SavedBy").Append(&user)
}

// --- Comments ---

func (s *Service) CreateComment(comment *models.Comment) error {
	return s.DB.Create(comment).Error
}

func (s *Service) ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// --- Follows ---

// ToggleFollow перемикає підписку follower -> following.
// Повертає true, якщо підписка тепер активна.
func (s *Service) ToggleFollow(followerID, followingID uint) (bool, error) {
	var follow models.Follow
	err := s.DB.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		newFollow := models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := s.DB.Create(&newFollow).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.DB.Delete(&follow).Error; err != nil {
		return false, err
	}
	return false, nil
}

// --- Notifications ---

func (s *Service) SaveNotification(n *models.Notification) error {
	if err := s.DB.Create(n).Error; err != nil {
		log.Printf("ERROR: Failed to save %s notification for user %d: %v", n.Type, n.ReceiverID, err)
		return err
	}
	return nil
}

func (s *Service) ListNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("receiver_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
