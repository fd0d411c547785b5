package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"connectly/backend/internal/config"
	"connectly/backend/internal/models"
	"connectly/backend/internal/storage"
)

// Невеликий адмін-CLI поверх storage-шару: модерація акаунтів та
// базова статистика, без підняття HTTP-сервера.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // Redis тут не потрібен

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: deactivate <user_id> | activate <user_id> | stats")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "deactivate":
		setUserActive(storageSvc, false)
	case "activate":
		setUserActive(storageSvc, true)
	case "stats":
		printStats(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func setUserActive(s *storage.Service, active bool) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: admin deactivate|activate <user_id>")
		os.Exit(1)
	}
	id, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		log.Fatalf("invalid user id: %v", err)
	}

	user, err := s.GetUserByID(uint(id))
	if err != nil {
		log.Fatalf("user %d not found: %v", id, err)
	}

	user.IsActive = active
	if err := s.UpdateUser(user); err != nil {
		log.Fatalf("failed to update user %d: %v", id, err)
	}
	fmt.Printf("User %d (%s): IsActive=%v\n", user.ID, user.Email, user.IsActive)
}

func printStats(db *gorm.DB) {
	var users, messages, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Message{}).Count(&messages)
	db.Model(&models.Post{}).Count(&posts)
	fmt.Printf("Users: %d\nMessages: %d\nPosts: %d\n", users, messages, posts)
}
