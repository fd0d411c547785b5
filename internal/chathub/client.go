package chathub

import "connectly/backend/internal/models"

// Client is the interface for one attached connection in a room.
// It abstracts the underlying transport, allowing the hub to fan out
// events without knowing how they reach the socket.
type Client interface {
	// GetUserID returns the authenticated user ID behind the connection.
	GetUserID() uint
	// GetRoomID returns the room the connection is attached to. A client
	// belongs to exactly one room for its whole lifetime.
	GetRoomID() string

	// GetSendChannel returns the channel to which the hub delivers events
	// intended for this specific connection. It is a send-only channel.
	GetSendChannel() chan<- models.ChatEvent

	// Run starts the client's read and write pumps, which handle incoming
	// and outgoing frames.
	Run()
	// Close shuts down the client's outbound channel. Safe to call more
	// than once.
	Close()
}
