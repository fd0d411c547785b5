package chathub

import (
	"errors"
	"fmt"
)

// ErrSelfChat повертається, коли користувач намагається відкрити кімнату із самим собою.
var ErrSelfChat = errors.New("cannot open a chat room with yourself")

// RoomName derives the canonical room identifier for a pair of users.
// The pair is sorted before formatting, so RoomName(a, b) == RoomName(b, a):
// users 1 and 2 always land in "chat_1_2" no matter who initiates.
// Self-chat is rejected.
func RoomName(a, b uint) (string, error) {
	if a == b {
		return "", ErrSelfChat
	}
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("chat_%d_%d", a, b), nil
}
