package chathub

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"connectly/backend/internal/models"
)

// Префікс Redis-каналів: один канал на кімнату ("chat:chat_1_2").
const channelPrefix = "chat:"

// RedisBroadcaster розподіляє fan-out між кількома інстансами сервера
// через Redis Pub/Sub. Членство залишається локальним (кожен інстанс
// тримає лише свої з'єднання), а події проходять через спільний Redis:
// Publish пише в Redis, слухач доставляє отримане у локальний Hub.
type RedisBroadcaster struct {
	local *Hub
	rdb   *redis.Client
}

func NewRedisBroadcaster(local *Hub, rdb *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{local: local, rdb: rdb}
}

// Join та Leave стосуються лише локальних з'єднань.
func (b *RedisBroadcaster) Join(roomID string, c Client)  { b.local.Join(roomID, c) }
func (b *RedisBroadcaster) Leave(roomID string, c Client) { b.local.Leave(roomID, c) }

// Publish публікує подію в Redis. Локальна доставка відбудеться через
// слухача — так само, як і на всіх інших інстансах.
func (b *RedisBroadcaster) Publish(roomID string, ev models.ChatEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(context.Background(), channelPrefix+roomID, payload).Err()
}

// StartListener запускає goroutine, яка слухає всі кімнатні канали Redis
// і передає отримані події у локальний Hub.
func (b *RedisBroadcaster) StartListener(ctx context.Context) {
	pubsub := b.rdb.PSubscribe(ctx, channelPrefix+"*")

	go func() {
		defer pubsub.Close()

		ch := pubsub.Channel()
		for msg := range ch {
			var ev models.ChatEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("pubsub: error unmarshalling redis message: %v", err)
				continue
			}

			roomID := strings.TrimPrefix(msg.Channel, channelPrefix)
			if err := b.local.Publish(roomID, ev); err != nil {
				log.Printf("pubsub: local delivery failed for room %s: %v", roomID, err)
			}
		}
	}()
}
