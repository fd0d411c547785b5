package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"connectly/backend/internal/models"
)

// GetProfile повертає профіль поточного користувача.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profile_pic"`
}

// UpdateProfile частково оновлює профіль поточного користувача.
func (h *Handler) UpdateProfile(c *gin.Context) {
	user, err := h.Storage.GetUserByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePic != nil {
		user.ProfilePic = *req.ProfilePic
	}

	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserByID повертає публічний профіль за ID.
func (h *Handler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.Storage.GetUserByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// FindPeople повертає всіх користувачів, окрім поточного.
func (h *Handler) FindPeople(c *gin.Context) {
	users, err := h.Storage.ListUsersExcept(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ToggleFollow перемикає підписку поточного користувача на іншого.
func (h *Handler) ToggleFollow(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	me := currentUserID(c)
	if uint(targetID) == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can't follow yourself"})
		return
	}

	target, err := h.Storage.GetUserByID(uint(targetID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	following, err := h.Storage.ToggleFollow(me, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle follow"})
		return
	}

	if following {
		h.notify(me, target.ID, models.NotificationFollow, nil, "started following you")
	}

	c.JSON(http.StatusOK, gin.H{"is_following": following})
}

// ListNotifications повертає сповіщення поточного користувача.
func (h *Handler) ListNotifications(c *gin.Context) {
	notifications, err := h.Storage.ListNotifications(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// notify створює сповіщення; власні дії користувача не сповіщаються.
func (h *Handler) notify(senderID, receiverID uint, kind string, postID *uint, text string) {
	if senderID == receiverID {
		return
	}
	h.Storage.SaveNotification(&models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       kind,
		PostID:     postID,
		Text:       text,
	})
}
