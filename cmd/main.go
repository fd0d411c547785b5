package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"connectly/backend/internal/api/handler"
	"connectly/backend/internal/chathub"
	"connectly/backend/internal/config"
	"connectly/backend/internal/mailer"
	"connectly/backend/internal/models"
	"connectly/backend/internal/storage"
	"connectly/backend/internal/token"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis (OTP-кеш, denylist токенів, опційно pub/sub)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції
	err = db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Connectly Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)
	tokens := token.NewManager(cfg.JWTSecret)
	m := mailer.New(cfg.BrevoAPIKey, cfg.SenderEmail)

	// 2. Broadcast: in-memory hub, за потреби обгорнутий у Redis Pub/Sub
	hub := chathub.NewHub()
	go hub.Run()

	var broadcaster chathub.Broadcaster = hub
	if cfg.DistributedChat {
		rb := chathub.NewRedisBroadcaster(hub, rdb)
		rb.StartListener(context.Background())
		broadcaster = rb
		log.Println("Chat broadcast: distributed (Redis Pub/Sub)")
	} else {
		log.Println("Chat broadcast: in-process")
	}

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(s, tokens, m, broadcaster)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/verify-otp", h.VerifyOTP)
			users.POST("/login", h.Login)
			users.POST("/token/refresh", h.RefreshToken)

			authed := users.Group("", h.AuthRequired())
			{
				authed.GET("/profile", h.GetProfile)
				authed.PATCH("/profile", h.UpdateProfile)
				authed.GET("/profile/:id", h.GetUserByID)
				authed.GET("/find-people", h.FindPeople)
			}
		}

		// Окремий префікс: gin не дозволяє ":id" поруч зі статичними
		// сегментами на одному рівні (/users/profile vs /users/:id)
		api.POST("/follow/:id", h.AuthRequired(), h.ToggleFollow)

		posts := api.Group("/posts", h.AuthRequired())
		{
			posts.GET("", h.ListPosts)
			posts.POST("", h.CreatePost)
			posts.GET("/:id", h.GetPost)
			posts.DELETE("/:id", h.DeletePost)
			posts.POST("/:id/like", h.ToggleLike)
			posts.POST("/:id/save", h.ToggleSave)
			posts.GET("/:id/comments", h.ListComments)
			posts.POST("/:id/comments", h.CreateComment)
		}

		api.GET("/chat/:id", h.AuthRequired(), h.GetChatHistory)
		api.GET("/notifications", h.AuthRequired(), h.ListNotifications)
	}

	// WebSocket: автентифікація всередині хендлера (заголовок або ?token=)
	r.GET("/ws/chat/:id", h.ServeWebSocket)

	// Запуск HTTP-сервера. Read/Write-таймаути не ставимо: вони б
	// обривали довгоживучі WebSocket-з'єднання.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
