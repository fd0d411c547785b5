package models

// InboundEvent is the envelope a client may send over the websocket.
// Kept separate from ChatEvent so the client-facing contract and the
// server-emitted contract can evolve independently.
type InboundEvent struct {
	Type    string `json:"type"` // "message", "typing"
	Message string `json:"message"`
}

// ChatEvent is the envelope the server emits to every member of a room.
type ChatEvent struct {
	Type       string `json:"type"`
	Message    string `json:"message,omitempty"`
	SenderID   uint   `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	UserID     uint   `json:"user_id,omitempty"`
}

// Розпізнані значення дискримінатора Type.
const (
	EventMessage = "message"
	EventTyping  = "typing"
)
