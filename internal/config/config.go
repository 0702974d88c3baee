package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"saticim"`
	JWTSecret  string `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	UploadDir  string `env:"UPLOAD_DIR" envDefault:"/uploads"`

	// OpenAI-compatible chat completion endpoint for the assistant.
	ChatAPIKey string `env:"CHAT_API_KEY"`
	ChatAPIURL string `env:"CHAT_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	ChatModel  string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
