package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"connectly/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient реалізує інтерфейс chathub.Client поверх gorilla/websocket.
type WebSocketClient struct {
	UserID  uint
	RoomID  string
	Conn    *websocket.Conn
	Hub     Broadcaster
	Session *Session
	Send    chan models.ChatEvent

	closeOnce sync.Once
}

// --- Реалізація методів інтерфейсу ---

func (c *WebSocketClient) GetUserID() uint                         { return c.UserID }
func (c *WebSocketClient) GetRoomID() string                       { return c.RoomID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatEvent { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close закриває Send канал (що зупинить writePump). Hub викликає Close
// при leave; sync.Once страхує від повторного закриття, якщо teardown
// прийшов з двох шляхів одночасно.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump читає кадри з WebSocket і віддає їх сесії.
// Вихід з циклу з будь-якої причини гарантовано знімає клієнта з кімнати
// та закриває з'єднання — це єдиний шлях teardown.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Leave(c.RoomID, c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		// Кадри одного з'єднання обробляються строго у порядку отримання
		c.Session.HandleFrame(message)
	}
}

// writePump читає події з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for user %d: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
