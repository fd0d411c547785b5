package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectly/backend/internal/api/handler"
	"connectly/backend/internal/chathub"
	"connectly/backend/internal/mailer"
	"connectly/backend/internal/models"
	"connectly/backend/internal/storage"
	"connectly/backend/internal/token"
)

// newWSRouter збирає роутер із реальним Hub, яким володіє тест:
// після відхилення з'єднання можна перевірити, що кімнат не з'явилося.
func newWSRouter(t *testing.T, store *MockStorage) (*gin.Engine, *chathub.Hub, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := chathub.NewHub()
	go hub.Run()

	tokens := token.NewManager("test-secret")
	h := handler.NewHandler(store, tokens, mailer.New("", "noreply@connectly.test"), hub)

	r := gin.New()
	r.GET("/ws/chat/:id", h.ServeWebSocket)
	return r, hub, tokens
}

func TestServeWebSocket_RejectsMissingToken(t *testing.T) {
	store := new(MockStorage)
	r, hub, _ := newWSRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Відмова до upgrade не має лишати жодного стану в хабі
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
	store.AssertNotCalled(t, "GetUserByID")
}

func TestServeWebSocket_RejectsGarbageToken(t *testing.T) {
	store := new(MockStorage)
	r, hub, _ := newWSRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/7?token=not-a-jwt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
	store.AssertNotCalled(t, "GetUserByID")
}

func TestServeWebSocket_RejectsUnknownUser(t *testing.T) {
	store := new(MockStorage)
	r, hub, tokens := newWSRouter(t, store)

	// Токен підписаний вірно, але користувача вже немає в довіднику
	access, err := tokens.Mint(3)
	require.NoError(t, err)
	store.On("GetUserByID", uint(3)).Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/7", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
	store.AssertExpectations(t)
}

func TestServeWebSocket_RejectsMissingPeer(t *testing.T) {
	store := new(MockStorage)
	r, hub, tokens := newWSRouter(t, store)

	access, err := tokens.Mint(3)
	require.NoError(t, err)
	store.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, FullName: "Олена"}, nil)
	store.On("GetUserByID", uint(7)).Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/7?token="+access, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
	store.AssertExpectations(t)
}

func TestServeWebSocket_RejectsSelfChat(t *testing.T) {
	store := new(MockStorage)
	r, hub, tokens := newWSRouter(t, store)

	access, err := tokens.Mint(3)
	require.NoError(t, err)
	store.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, FullName: "Олена"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/3?token="+access, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
}

func TestServeWebSocket_RejectsBadPeerID(t *testing.T) {
	store := new(MockStorage)
	r, hub, tokens := newWSRouter(t, store)

	access, err := tokens.Mint(3)
	require.NoError(t, err)
	store.On("GetUserByID", uint(3)).Return(&models.User{ID: 3, FullName: "Олена"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/ws/chat/abc?token="+access, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hub.Rooms)
}
