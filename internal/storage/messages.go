package storage

import "connectly/backend/internal/models"

// Пагінація історії: за замовчуванням 50 повідомлень, максимум 100.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// NormalizeLimit зводить запитаний limit до дозволеного діапазону.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

// SaveMessage зберігає повідомлення в PostgreSQL. CreatedAt проставляє
// GORM при створенні запису — це і є авторитетний час повідомлення.
func (s *Service) SaveMessage(msg *models.Message) error {
	return s.DB.Create(msg).Error
}

// GetChatHistory повертає повідомлення між двома користувачами в обох
// напрямках, відсортовані за часом створення (від старих до нових).
func (s *Service) GetChatHistory(userA, userB uint, limit, offset int) ([]models.Message, error) {
	limit = NormalizeLimit(limit)
	if offset < 0 {
		offset = 0
	}

	var messages []models.Message
	err := s.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Підставляємо email відправників (у парі їх лише двоє)
	emails := make(map[uint]string, 2)
	for _, id := range []uint{userA, userB} {
		if user, err := s.GetUserByID(id); err == nil {
			emails[id] = user.Email
		}
	}
	for i := range messages {
		messages[i].SenderEmail = emails[messages[i].SenderID]
	}

	return messages, nil
}
