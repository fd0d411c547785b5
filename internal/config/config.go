package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config збирає всі налаштування процесу з env-змінних.
// .env підвантажує godotenv у cmd/main.go ще до виклику Load.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"password"`
	DBName     string `envconfig:"DB_NAME" default:"connectlydb"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// DistributedChat=false => broadcast працює лише в межах одного
	// інстансу (in-memory hub). true => fan-out через Redis Pub/Sub,
	// кілька інстансів бачать спільні кімнати.
	DistributedChat bool `envconfig:"DISTRIBUTED_CHAT" default:"false"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	BrevoAPIKey string `envconfig:"BREVO_API_KEY"`
	SenderEmail string `envconfig:"SENDER_EMAIL" default:"no-reply@connectly.app"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}

// PostgresDSN складає DSN для gorm/postgres.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
