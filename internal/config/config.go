// Package config loads process configuration from the environment.
// A .env file is honored in local development; deployed environments
// provide real environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// PSP base endpoints. Sandbox is used for every environment except main.
const (
	pixProductionURL = "https://pix.api.efipay.com.br"
	pixSandboxURL    = "https://pix-h.api.efipay.com.br"
)

// Config carries every value the dependency container needs to wire the
// process. It is assembled once at startup and passed down explicitly.
type Config struct {
	Port        string
	ServiceName string
	Environment string

	// Document database.
	MongoURI string

	// Admin-config cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AdminCacheTTL time.Duration

	// Google Cloud project shared by the identity provider, the secret
	// store and the object store.
	ProjectID       string
	CredentialsFile string

	// PSP (Efi) credentials. The client certificate itself comes from
	// the secret store at connect time, not from the environment.
	PixBaseURL      string
	PixClientID     string
	PixClientSecret string

	// QR image storage.
	QRCodeBucket string
	SignedURLTTL time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load builds the Config from the current environment.
func Load() Config {
	env := GetEnv("ENV", "main")

	pixBaseURL := GetEnv("PIX_BASE_URL", "")
	if pixBaseURL == "" {
		if env == "main" {
			pixBaseURL = pixProductionURL
		} else {
			pixBaseURL = pixSandboxURL
		}
	}

	return Config{
		Port:            GetEnv("PORT", "3000"),
		ServiceName:     GetEnv("SERVICE_NAME", "domain-payment"),
		Environment:     env,
		MongoURI:        GetEnv("DB_URI", "mongodb://localhost:27017"),
		RedisAddr:       GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisDB:         GetIntEnv("REDIS_DB", 0),
		AdminCacheTTL:   time.Duration(GetIntEnv("ADMIN_CACHE_TTL_SECONDS", 300)) * time.Second,
		ProjectID:       GetEnv("PROJECT_ID", ""),
		CredentialsFile: GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		PixBaseURL:      pixBaseURL,
		PixClientID:     GetEnv("CLIENT_ID", ""),
		PixClientSecret: GetEnv("CLIENT_SECRET", ""),
		QRCodeBucket:    GetEnv("PIX_QRCODE_BUCKET_NAME", ""),
		SignedURLTTL:    time.Duration(GetIntEnv("SIGNED_URL_TTL_SECONDS", 1800)) * time.Second,
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == "main"
}
