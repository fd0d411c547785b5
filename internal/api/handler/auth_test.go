package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectly/backend/internal/api/handler"
	"connectly/backend/internal/mailer"
	"connectly/backend/internal/models"
	"connectly/backend/internal/token"
)

func newAuthRouter(t *testing.T, store *MockStorage) (*gin.Engine, *token.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewManager("test-secret")
	h := handler.NewHandler(store, tokens, mailer.New("", "noreply@connectly.test"), nil)

	r := gin.New()
	r.POST("/api/token/refresh", h.RefreshToken)
	return r, tokens
}

func postRefresh(r *gin.Engine, refresh string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"refresh": refresh})
	req := httptest.NewRequest(http.MethodPost, "/api/token/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRefreshToken_Success(t *testing.T) {
	store := new(MockStorage)
	r, tokens := newAuthRouter(t, store)

	refresh, jti, err := tokens.MintRefresh(5)
	require.NoError(t, err)

	store.On("IsRefreshTokenRevoked", jti).Return(false, nil)
	store.On("GetUserByID", uint(5)).Return(&models.User{ID: 5}, nil)
	store.On("RevokeRefreshToken", jti, tokens.RefreshTTL()).Return(nil)

	w := postRefresh(r, refresh)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access"])
	store.AssertExpectations(t)
}

func TestRefreshToken_RevokeFailureIssuesNothing(t *testing.T) {
	store := new(MockStorage)
	r, tokens := newAuthRouter(t, store)

	refresh, jti, err := tokens.MintRefresh(5)
	require.NoError(t, err)

	store.On("IsRefreshTokenRevoked", jti).Return(false, nil)
	store.On("GetUserByID", uint(5)).Return(&models.User{ID: 5}, nil)
	// Redis впав — токен лишився б придатним для повтору,
	// тому новий access видавати не можна
	store.On("RevokeRefreshToken", jti, tokens.RefreshTTL()).Return(errors.New("redis: connection refused"))

	w := postRefresh(r, refresh)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp["access"])
	store.AssertExpectations(t)
}

func TestRefreshToken_LookupErrorRejects(t *testing.T) {
	store := new(MockStorage)
	r, tokens := newAuthRouter(t, store)

	refresh, jti, err := tokens.MintRefresh(5)
	require.NoError(t, err)

	store.On("IsRefreshTokenRevoked", jti).Return(false, nil)
	// Не ErrNotFound, а тимчасовий збій БД — видавати access "на віру" не можна
	store.On("GetUserByID", uint(5)).Return(nil, errors.New("db: connection timed out"))

	w := postRefresh(r, refresh)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	store.AssertNotCalled(t, "RevokeRefreshToken")
	store.AssertExpectations(t)
}

func TestRefreshToken_RevokedReplayRejected(t *testing.T) {
	store := new(MockStorage)
	r, tokens := newAuthRouter(t, store)

	refresh, jti, err := tokens.MintRefresh(5)
	require.NoError(t, err)

	store.On("IsRefreshTokenRevoked", jti).Return(true, nil)

	w := postRefresh(r, refresh)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	store.AssertNotCalled(t, "GetUserByID")
	store.AssertExpectations(t)
}
