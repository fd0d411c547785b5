package handler_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"connectly/backend/internal/models"
)

// MockStorage is a testify mock implementation of the storage.Storage
// interface for handler tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) ListUsersExcept(id uint) ([]models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Signup / OTP cache
func (m *MockStorage) StashSignupData(data *models.SignupData, ttl time.Duration) error {
	args := m.Called(data, ttl)
	return args.Error(0)
}

func (m *MockStorage) GetSignupData(email string) (*models.SignupData, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SignupData), args.Error(1)
}

func (m *MockStorage) DeleteSignupData(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

// Messages
func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetChatHistory(userA, userB uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(userA, userB, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// Posts / social graph
func (m *MockStorage) CreatePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockStorage) GetPostByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockStorage) ListPosts() ([]models.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockStorage) DeletePost(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ToggleLike(postID, userID uint) (bool, int64, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ToggleSave(postID, userID uint) (bool, error) {
	args := m.Called(postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockStorage) ListComments(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockStorage) ToggleFollow(followerID, followingID uint) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

// Notifications
func (m *MockStorage) SaveNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStorage) ListNotifications(userID uint) ([]models.Notification, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

// Refresh-token denylist
func (m *MockStorage) RevokeRefreshToken(jti string, ttl time.Duration) error {
	args := m.Called(jti, ttl)
	return args.Error(0)
}

func (m *MockStorage) IsRefreshTokenRevoked(jti string) (bool, error) {
	args := m.Called(jti)
	return args.Bool(0), args.Error(1)
}
