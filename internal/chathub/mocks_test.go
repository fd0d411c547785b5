package chathub_test

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"connectly/backend/internal/chathub"
	"connectly/backend/internal/models"
)

// MockMessageStore is a testify mock for the chathub.MessageStore interface.
type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

// mockClient is a lightweight test double for the chathub.Client interface.
// Its send channel is buffered so hub fan-out never blocks in tests.
type mockClient struct {
	userID uint
	roomID string
	send   chan models.ChatEvent

	mu         sync.Mutex
	closeCalls int
}

func newMockClient(userID uint, roomID string) *mockClient {
	return &mockClient{
		userID: userID,
		roomID: roomID,
		send:   make(chan models.ChatEvent, 10),
	}
}

func (c *mockClient) GetUserID() uint                         { return c.userID }
func (c *mockClient) GetRoomID() string                       { return c.roomID }
func (c *mockClient) GetSendChannel() chan<- models.ChatEvent { return c.send }
func (c *mockClient) Run()                                    {}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCalls++
	if c.closeCalls == 1 {
		close(c.send)
	}
}

func (c *mockClient) CloseCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeCalls
}

// Received drains everything currently sitting in the send channel.
func (c *mockClient) Received() []models.ChatEvent {
	var events []models.ChatEvent
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

// recordingBroadcaster captures published events for session unit tests.
type recordingBroadcaster struct {
	mu        sync.Mutex
	published []publishedEvent
	failWith  error
}

type publishedEvent struct {
	roomID string
	event  models.ChatEvent
}

func (b *recordingBroadcaster) Join(roomID string, c chathub.Client)  {}
func (b *recordingBroadcaster) Leave(roomID string, c chathub.Client) {}

func (b *recordingBroadcaster) Publish(roomID string, ev models.ChatEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failWith != nil {
		return b.failWith
	}
	b.published = append(b.published, publishedEvent{roomID: roomID, event: ev})
	return nil
}

func (b *recordingBroadcaster) Published() []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]publishedEvent, len(b.published))
	copy(out, b.published)
	return out
}
