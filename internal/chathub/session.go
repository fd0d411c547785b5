package chathub

import (
	"encoding/json"
	"log"

	"connectly/backend/internal/models"
)

// MessageStore is the slice of the storage layer a session needs: a durable
// append. History reads go through the REST API, not through the session.
type MessageStore interface {
	SaveMessage(msg *models.Message) error
}

// Session тримає стан однієї авторизованої прив'язки "користувач-кімната"
// та розбирає вхідні кадри. Транспорт (ws_client.go) викликає HandleFrame
// для кожного отриманого кадру; все інше — сайд-ефекти: запис у сховище
// та публікація у кімнату.
type Session struct {
	UserID     uint
	PeerID     uint
	RoomID     string
	SenderName string

	hub   Broadcaster
	store MessageStore
}

func NewSession(userID, peerID uint, roomID, senderName string, hub Broadcaster, store MessageStore) *Session {
	return &Session{
		UserID:     userID,
		PeerID:     peerID,
		RoomID:     roomID,
		SenderName: senderName,
		hub:        hub,
		store:      store,
	}
}

// HandleFrame розбирає один вхідний кадр. Биті кадри ніколи не валять
// сесію: логуються та відкидаються, з'єднання живе далі.
func (s *Session) HandleFrame(raw []byte) {
	var ev models.InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("session: dropping malformed frame from user %d: %v", s.UserID, err)
		return
	}

	switch ev.Type {
	case models.EventMessage:
		s.handleMessage(ev.Message)
	case models.EventTyping:
		s.handleTyping()
	default:
		log.Printf("session: unknown frame type %q from user %d", ev.Type, s.UserID)
	}
}

// handleMessage: спершу запис у сховище, потім broadcast. Якщо запис
// не вдався — подію не публікуємо: повідомлення, якого немає в історії,
// не повинно бути доставлене.
func (s *Session) handleMessage(content string) {
	if content == "" {
		log.Printf("session: empty message from user %d ignored", s.UserID)
		return
	}

	msg := &models.Message{
		SenderID:   s.UserID,
		ReceiverID: s.PeerID,
		Content:    content,
	}
	if err := s.store.SaveMessage(msg); err != nil {
		log.Printf("session: failed to save message from user %d: %v", s.UserID, err)
		return
	}

	ev := models.ChatEvent{
		Type:       models.EventMessage,
		Message:    content,
		SenderID:   s.UserID,
		SenderName: s.SenderName,
	}
	// Відправник теж отримає цю подію — клієнт сам вирішує, як її показати.
	if err := s.hub.Publish(s.RoomID, ev); err != nil {
		log.Printf("session: broadcast failed in room %s: %v", s.RoomID, err)
	}
}

// handleTyping: ефемерний сигнал, ніколи не зберігається.
func (s *Session) handleTyping() {
	ev := models.ChatEvent{
		Type:   models.EventTyping,
		UserID: s.UserID,
	}
	if err := s.hub.Publish(s.RoomID, ev); err != nil {
		log.Printf("session: typing broadcast failed in room %s: %v", s.RoomID, err)
	}
}
