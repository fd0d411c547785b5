package chathub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connectly/backend/internal/chathub"
)

func TestRoomName_Symmetric(t *testing.T) {
	pairs := [][2]uint{
		{1, 2},
		{3, 7},
		{7, 3},
		{100, 1},
		{42, 43},
	}

	for _, pair := range pairs {
		ab, err := chathub.RoomName(pair[0], pair[1])
		assert.NoError(t, err)

		ba, err := chathub.RoomName(pair[1], pair[0])
		assert.NoError(t, err)

		assert.Equal(t, ab, ba, "RoomName must not depend on argument order")
	}
}

func TestRoomName_Format(t *testing.T) {
	room, err := chathub.RoomName(7, 3)
	assert.NoError(t, err)
	assert.Equal(t, "chat_3_7", room, "smaller id always comes first")
}

func TestRoomName_DistinctPairsDistinctRooms(t *testing.T) {
	r1, err := chathub.RoomName(1, 2)
	assert.NoError(t, err)
	r2, err := chathub.RoomName(1, 3)
	assert.NoError(t, err)
	assert.NotEqual(t, r1, r2)
}

func TestRoomName_SelfChatRejected(t *testing.T) {
	_, err := chathub.RoomName(5, 5)
	assert.ErrorIs(t, err, chathub.ErrSelfChat)
}
