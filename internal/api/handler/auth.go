package handler

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"connectly/backend/internal/models"
)

// OTP живе 10 хвилин — стільки ж, скільки і стешовані дані реєстрації.
const otpTTL = 10 * time.Minute

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// Register стартує реєстрацію: генерує OTP, кладе дані у Redis
// та надсилає код на пошту. Акаунт буде створено лише у VerifyOTP.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	// Дублікат email — відмова одразу
	if _, err := h.Storage.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
		return
	}

	otp, err := generateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	data := &models.SignupData{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		OTP:      otp,
	}
	if err := h.Storage.StashSignupData(data, otpTTL); err != nil {
		log.Printf("ERROR: Failed to stash signup data for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration temporarily unavailable"})
		return
	}

	if err := h.Mailer.SendOTP(req.Email, otp); err != nil {
		// Лист не пішов — прибираємо стеш, щоб не лишати висячу реєстрацію
		h.Storage.DeleteSignupData(req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Email failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP звіряє код та створює акаунт.
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	data, err := h.Storage.GetSignupData(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired or invalid email"})
		return
	}

	if data.OTP != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}

	user := models.User{
		Email:    data.Email,
		FullName: data.FullName,
		IsActive: true,
	}
	if err := user.SetPassword(data.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	if err := h.Storage.CreateUser(&user); err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", data.Email, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create account"})
		return
	}

	h.Storage.DeleteSignupData(req.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Account verified successfully!"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login видає пару access/refresh токенів разом з базовим профілем.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
		return
	}

	access, err := h.Tokens.Mint(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	refresh, _, err := h.Tokens.MintRefresh(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":    access,
		"refresh":   refresh,
		"full_name": user.FullName,
		"email":     user.Email,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken обмінює refresh-токен на новий access.
// Використаний refresh відкликається (одноразовість).
func (h *Handler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	userID, jti, err := h.Tokens.VerifyRefresh(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	revoked, err := h.Storage.IsRefreshTokenRevoked(jti)
	if err != nil || revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	// Будь-яка помилка довідника — відмова: видати access "на віру" не можна
	if _, err := h.Storage.GetUserByID(userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	// Відкликаємо refresh ДО видачі нового access: якщо відкликання не
	// вдалося, токен лишився б придатним для повтору — тоді не видаємо нічого
	if err := h.Storage.RevokeRefreshToken(jti, h.Tokens.RefreshTTL()); err != nil {
		log.Printf("ERROR: Failed to revoke refresh token %s: %v", jti, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	access, err := h.Tokens.Mint(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// generateOTP генерує 6-значний код через crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
