package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetChatHistory повертає історію листування між поточним користувачем
// та користувачем :id. Пагінація: ?limit= (до 100, типово 50) та ?offset=.
// Порядок завжди від старих до нових — стабільний для повторних викликів.
func (h *Handler) GetChatHistory(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.Storage.GetChatHistory(currentUserID(c), uint(otherID), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
