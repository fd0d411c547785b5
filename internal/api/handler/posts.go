package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"connectly/backend/internal/models"
)

type postResponse struct {
	ID        uint           `json:"id"`
	User      string         `json:"user"`
	AuthorID  uint           `json:"author_id"`
	MediaURL  string         `json:"media_url"`
	MediaType string         `json:"media_type"`
	Caption   string         `json:"caption"`
	Hashtags  pq.StringArray `json:"hashtags"`
	CreatedAt string         `json:"created_at"`
	Likes     int            `json:"likes"`
	IsLiked   bool           `json:"is_liked"`
}

func toPostResponse(post *models.Post, viewerID uint) postResponse {
	isLiked := false
	for _, u := range post.LikedBy {
		if u.ID == viewerID {
			isLiked = true
			break
		}
	}
	return postResponse{
		ID:        post.ID,
		User:      post.Author.FullName,
		AuthorID:  post.AuthorID,
		MediaURL:  post.MediaURL,
		MediaType: post.MediaType,
		Caption:   post.Caption,
		Hashtags:  post.Hashtags,
		CreatedAt: post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Likes:     len(post.LikedBy),
		IsLiked:   isLiked,
	}
}

// ListPosts повертає стрічку (найновіші першими).
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.Storage.ListPosts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	viewer := currentUserID(c)
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i], viewer))
	}
	c.JSON(http.StatusOK, out)
}

type createPostRequest struct {
	MediaURL  string   `json:"media_url" binding:"required,url"`
	MediaType string   `json:"media_type" binding:"omitempty,oneof=image video"`
	Caption   string   `json:"caption"`
	Hashtags  []string `json:"hashtags"`
}

// CreatePost створює пост; автором завжди є поточний користувач.
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_url is required"})
		return
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	post := models.Post{
		AuthorID:  currentUserID(c),
		MediaURL:  req.MediaURL,
		MediaType: mediaType,
		Caption:   req.Caption,
		Hashtags:  pq.StringArray(req.Hashtags),
	}
	if err := h.Storage.CreatePost(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	created, err := h.Storage.GetPostByID(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(created, post.AuthorID))
}

// GetPost повертає один пост.
func (h *Handler) GetPost(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post, currentUserID(c)))
}

// DeletePost видаляє пост. Дозволено лише автору.
func (h *Handler) DeletePost(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	if post.AuthorID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can't delete someone else's post!"})
		return
	}

	if err := h.Storage.DeletePost(post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLike перемикає лайк і повертає актуальний стан.
func (h *Handler) ToggleLike(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	me := currentUserID(c)
	liked, count, err := h.Storage.ToggleLike(post.ID, me)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	if liked {
		h.notify(me, post.AuthorID, models.NotificationLike, &post.ID, "liked your post")
	}

	c.JSON(http.StatusOK, gin.H{"likes": count, "is_liked": liked})
}

// ToggleSave перемикає закладку на пості.
func (h *Handler) ToggleSave(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	saved, err := h.Storage.ToggleSave(post.ID, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle save"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_saved": saved})
}

// ListComments повертає коментарі поста (від старих до нових).
func (h *Handler) ListComments(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	comments, err := h.Storage.ListComments(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	type commentResponse struct {
		ID        uint   `json:"id"`
		User      string `json:"user"`
		AuthorID  uint   `json:"author_id"`
		Content   string `json:"content"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]commentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, commentResponse{
			ID:        cm.ID,
			User:      cm.Author.FullName,
			AuthorID:  cm.AuthorID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, out)
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment додає коментар до поста.
func (h *Handler) CreateComment(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	me := currentUserID(c)
	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: me,
		Content:  req.Content,
	}
	if err := h.Storage.CreateComment(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	h.notify(me, post.AuthorID, models.NotificationComment, &post.ID,
		fmt.Sprintf("commented: %s", previewText(req.Content, 30)))

	c.JSON(http.StatusCreated, comment)
}

// previewText вкорочує текст до max символів. Рубаємо по рунах, а не по
// байтах: зріз посеред багатобайтового символу дав би битий UTF-8.
func previewText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// findPost дістає пост за :id або відповідає помилкою сам.
func (h *Handler) findPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return nil, false
	}

	post, err := h.Storage.GetPostByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	return post, true
}
