package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"connectly/backend/internal/models"
)

// ErrNotFound повертається, коли запитаного запису не існує.
var ErrNotFound = errors.New("record not found")

type Storage interface {
	// Users (User Directory)
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListUsersExcept(id uint) ([]models.User, error)

	// Signup / OTP cache
	StashSignupData(data *models.SignupData, ttl time.Duration) error
	GetSignupData(email string) (*models.SignupData, error)
	DeleteSignupData(email string) error

	// Messages (Message Store)
	SaveMessage(msg *models.Message) error
	GetChatHistory(userA, userB uint, limit, offset int) ([]models.Message, error)

	// Posts / social graph
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListPosts() ([]models.Post, error)
	DeletePost(id uint) error
	ToggleLike(postID, userID uint) (bool, int64, error)
	ToggleSave(postID, userID uint) (bool, error)
	CreateComment(comment *models.Comment) error
	ListComments(postID uint) ([]models.Comment, error)
	ToggleFollow(followerID, followingID uint) (bool, error)

	// Notifications
	SaveNotification(n *models.Notification) error
	ListNotifications(userID uint) ([]models.Notification, error)

	// Refresh-token denylist
	RevokeRefreshToken(jti string, ttl time.Duration) error
	IsRefreshTokenRevoked(jti string) (bool, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// --- Users ---

// CreateUser зберігає нового користувача в PostgreSQL
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %d: %v", id, err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// ListUsersExcept повертає всіх користувачів, окрім вказаного (find-people).
func (s *Service) ListUsersExcept(id uint) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("id <> ?", id).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --- Signup / OTP cache (Redis) ---

func signupKey(email string) string { return "signup:" + email }

// StashSignupData кладе дані реєстрації в Redis із TTL.
// Акаунт у PostgreSQL з'явиться лише після підтвердження OTP.
func (s *Service) StashSignupData(data *models.SignupData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, signupKey(data.Email), payload, ttl).Err()
}

func (s *Service) GetSignupData(email string) (*models.SignupData, error) {
	payload, err := s.Redis.Get(s.Ctx, signupKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data models.SignupData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Service) DeleteSignupData(email string) error {
	return s.Redis.Del(s.Ctx, signupKey(email)).Err()
}

// --- Refresh-token denylist (Redis) ---

func revokedKey(jti string) string { return "revoked:" + jti }

// RevokeRefreshToken позначає refresh-токен як використаний/відкликаний.
// TTL дорівнює залишку життя токена — далі ключ не потрібен.
func (s *Service) RevokeRefreshToken(jti string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *Service) IsRefreshTokenRevoked(jti string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, revokedKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
