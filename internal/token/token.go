// Package token mints and verifies the JWT access/refresh pair.
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken повертається для відсутнього, протермінованого,
// пошкодженого токена або токена з невірним підписом.
var ErrInvalidToken = errors.New("invalid or expired token")

const issuer = "connectly-backend"

// Manager підписує та перевіряє токени одним HS256-секретом.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  24 * time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// Mint видає access-токен із user_id у claims.
func (m *Manager) Mint(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(m.accessTTL).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     issuer,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// MintRefresh видає refresh-токен. jti (UUID) повертається окремо —
// за ним токен можна відкликати після використання.
func (m *Manager) MintRefresh(userID uint) (string, string, error) {
	jti := uuid.New().String()
	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "refresh",
		"jti":     jti,
		"exp":     time.Now().Add(m.refreshTTL).Unix(),
		"iat":     time.Now().Unix(),
		"iss":     issuer,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// Verify перевіряє access-токен і повертає user_id.
// Refresh-токен тут не приймається.
func (m *Manager) Verify(tokenString string) (uint, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return 0, err
	}
	if typ, _ := claims["typ"].(string); typ == "refresh" {
		return 0, ErrInvalidToken
	}
	return userIDFromClaims(claims)
}

// VerifyRefresh перевіряє refresh-токен і повертає user_id та jti.
func (m *Manager) VerifyRefresh(tokenString string) (uint, string, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return 0, "", err
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return 0, "", ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return 0, "", ErrInvalidToken
	}
	userID, err := userIDFromClaims(claims)
	if err != nil {
		return 0, "", err
	}
	return userID, jti, nil
}

// RefreshTTL — повний строк життя refresh-токена (для TTL у denylist).
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *Manager) parse(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// userIDFromClaims приводить user_id до цілого. JSON-числа приходять
// як float64 — звідси явна конверсія.
func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"]
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := raw.(float64)
	if !ok || id < 1 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
