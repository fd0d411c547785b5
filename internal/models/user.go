package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляє зареєстрований акаунт у системі.
// Пароль ніколи не віддається назовні — зберігається лише bcrypt-хеш.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	ProfilePic   string    `json:"profile_pic"`
	Bio          string    `json:"bio"`
	IsActive     bool      `gorm:"default:true" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPassword хешує пароль через bcrypt та зберігає хеш.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword порівнює пароль із збереженим хешем.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// SignupData — тимчасові дані реєстрації, які живуть у Redis до підтвердження OTP.
type SignupData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	OTP      string `json:"otp"`
}
