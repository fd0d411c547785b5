package chathub

import (
	"log"

	"connectly/backend/internal/models"
)

// Broadcaster is the fan-out contract a session depends on. The in-process
// Hub and the Redis-backed broadcaster both satisfy it; which one is used
// is decided once, at wiring time in cmd/main.go.
type Broadcaster interface {
	// Join registers a client as a member of a room.
	Join(roomID string, c Client)
	// Leave removes a client from a room. Removing an absent client is a no-op.
	Leave(roomID string, c Client)
	// Publish delivers an event to every client currently joined to the room.
	// Clients that join after the call do not receive the event.
	Publish(roomID string, ev models.ChatEvent) error
}

type membership struct {
	roomID string
	client Client
}

type publication struct {
	roomID string
	event  models.ChatEvent
}

// Hub — in-process реалізація Broadcaster. Уся мапа кімнат належить
// одній goroutine (Run), тому join/leave/publish не потребують блокувань:
// publish завжди бачить консистентний знімок учасників.
type Hub struct {
	// Rooms: RoomID -> множина приєднаних клієнтів. Читати ззовні можна
	// лише у тестах, після синхронізації з циклом Run.
	Rooms map[string]map[Client]bool

	joinCh    chan membership
	leaveCh   chan membership
	publishCh chan publication
}

// NewHub створює Hub; Run() потрібно запустити окремою goroutine.
func NewHub() *Hub {
	return &Hub{
		Rooms:     make(map[string]map[Client]bool),
		joinCh:    make(chan membership),
		leaveCh:   make(chan membership),
		publishCh: make(chan publication),
	}
}

func (h *Hub) Join(roomID string, c Client) {
	h.joinCh <- membership{roomID: roomID, client: c}
}

func (h *Hub) Leave(roomID string, c Client) {
	h.leaveCh <- membership{roomID: roomID, client: c}
}

func (h *Hub) Publish(roomID string, ev models.ChatEvent) error {
	h.publishCh <- publication{roomID: roomID, event: ev}
	return nil
}

// Run — головний цикл диспетчера. Обробляє join/leave/publish послідовно.
func (h *Hub) Run() {
	for {
		select {
		case m := <-h.joinCh:
			room, ok := h.Rooms[m.roomID]
			if !ok {
				// Кімната створюється неявно при першому join
				room = make(map[Client]bool)
				h.Rooms[m.roomID] = room
			}
			room[m.client] = true
			log.Printf("hub: user %d joined room %s (%d members)", m.client.GetUserID(), m.roomID, len(room))

		case m := <-h.leaveCh:
			h.removeClient(m.roomID, m.client)

		case p := <-h.publishCh:
			for client := range h.Rooms[p.roomID] {
				select {
				case client.GetSendChannel() <- p.event:
				default:
					// Клієнт не встигає читати — відключаємо його
					log.Printf("hub: dropping slow client %d in room %s", client.GetUserID(), p.roomID)
					h.removeClient(p.roomID, client)
				}
			}
		}
	}
}

// removeClient видаляє клієнта з кімнати та закриває його Send-канал.
// Ідемпотентно: повторне видалення того самого клієнта нічого не робить.
func (h *Hub) removeClient(roomID string, c Client) {
	room, ok := h.Rooms[roomID]
	if !ok {
		return
	}
	if !room[c] {
		return
	}
	delete(room, c)
	c.Close()
	if len(room) == 0 {
		// Остання людина вийшла — кімната зникає
		delete(h.Rooms, roomID)
	}
	log.Printf("hub: user %d left room %s", c.GetUserID(), roomID)
}
