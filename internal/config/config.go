// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the relay reads from the environment. It is
// constructed once at startup and passed down explicitly; nothing here is
// process-global.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	WhatsAppAPIURL        string
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
	WhatsAppSendTimeout   time.Duration

	WebhookVerifyToken string
	JWTSecret          string

	AMQPURL string
}

// Load reads the environment. The JWT signing secret and the WhatsApp
// credentials are required: starting without them would silently accept
// unsigned tokens or fail on the first send, so we fail fast instead.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),

		WhatsAppAPIURL:        getEnv("WHATSAPP_API_URL", "https://graph.facebook.com/v18.0"),
		WhatsAppPhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppAccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),

		WebhookVerifyToken: os.Getenv("WEBHOOK_VERIFY_TOKEN"),
		JWTSecret:          os.Getenv("JWT_SECRET"),

		AMQPURL: os.Getenv("AMQP_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.WhatsAppPhoneNumberID == "" {
		return nil, fmt.Errorf("WHATSAPP_PHONE_NUMBER_ID is required")
	}
	if cfg.WhatsAppAccessToken == "" {
		return nil, fmt.Errorf("WHATSAPP_ACCESS_TOKEN is required")
	}
	if cfg.WebhookVerifyToken == "" {
		return nil, fmt.Errorf("WEBHOOK_VERIFY_TOKEN is required")
	}

	seconds, err := strconv.Atoi(getEnv("WHATSAPP_SEND_TIMEOUT", "10"))
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("WHATSAPP_SEND_TIMEOUT must be a positive integer, got %q", os.Getenv("WHATSAPP_SEND_TIMEOUT"))
	}
	cfg.WhatsAppSendTimeout = time.Duration(seconds) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
