package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"connectly/backend/internal/chathub"
	"connectly/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket для кімнати з :id.
// Порядок життєвого циклу: автентифікація -> перевірка співрозмовника ->
// обчислення кімнати -> upgrade -> join -> pumps. Будь-яка помилка до
// upgrade відхиляє з'єднання, не створюючи жодного стану.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	// 1. Токен: Bearer-заголовок або query-параметр ?token= (для браузерних
	// WebSocket-клієнтів, які не вміють ставити заголовки)
	tokenString := ""
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else {
		tokenString = c.Query("token")
	}

	userID, err := h.Tokens.Verify(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	// 2. Токен валідний, але користувач має існувати в довіднику
	user, err := h.Storage.GetUserByID(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	// 3. Співрозмовник
	peerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}
	peer, err := h.Storage.GetUserByID(uint(peerID))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Peer not found"})
		return
	}

	// 4. Канонічна назва кімнати (симетрична для обох учасників)
	roomID, err := chathub.RoomName(user.ID, peer.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "You can't open a chat with yourself"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		UserID: user.ID,
		RoomID: roomID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.ChatEvent, 256),
	}
	client.Session = chathub.NewSession(user.ID, peer.ID, roomID, user.FullName, h.Hub, h.Storage)

	// 5. Реєстрація в кімнаті та запуск pumps
	h.Hub.Join(roomID, client)
	client.Run()
}
