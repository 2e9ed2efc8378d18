package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverLocal = "local"
	StorageDriverR2    = "r2"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort      string
	ShutdownTimeout time.Duration

	JWTSecret string

	StorageDriver string
	UploadDir     string
	PublicBaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string

	RedisURL       string
	AuthRateLimit  int
	AuthRateWindow time.Duration

	// TrustProxy makes the client IP come from X-Forwarded-For / X-Real-IP.
	// Only enable it when a proxy that overwrites those headers fronts the API.
	TrustProxy bool
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	serverPort := getEnv("SERVER_PORT", "8080")

	storageDriver := strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal))
	if storageDriver != StorageDriverLocal && storageDriver != StorageDriverR2 {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", storageDriver)
	}

	publicBaseURL := strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:"+serverPort), "/")

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort:      serverPort,
		ShutdownTimeout: time.Duration(getPositiveInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,

		JWTSecret: jwtSecret,

		StorageDriver: storageDriver,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: publicBaseURL,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		RedisURL:       os.Getenv("REDIS_URL"),
		AuthRateLimit:  getPositiveInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: time.Duration(getPositiveInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,

		TrustProxy: getBool("TRUST_PROXY", false),
	}, nil
}

// DSN renders the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getPositiveInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
