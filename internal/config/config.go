package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN       string
	Environment string
	LogLevel    string
	HTTPAddr    string

	Location     *time.Location
	SessionTTL   time.Duration
	CookieSecure bool

	GCSBucket          string
	GCSCredentialsFile string
	GCSPublicBaseURL   string

	TelegramToken         string
	TelegramTeacherChatID int64

	SeedTeacherPhone    string
	SeedTeacherPassword string
	SeedTeacherName     string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv собирает конфиг из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:               os.Getenv("DB_DSN"),
		Environment:         getEnv("ENV", "development"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":5000"),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile:  os.Getenv("GCS_CREDENTIALS_FILE"),
		GCSPublicBaseURL:    os.Getenv("GCS_PUBLIC_BASE_URL"),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		SeedTeacherPhone:    os.Getenv("SEED_TEACHER_PHONE"),
		SeedTeacherPassword: os.Getenv("SEED_TEACHER_PASSWORD"),
		SeedTeacherName:     getEnv("SEED_TEACHER_NAME", "선생님"),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Seoul"))
	if err != nil {
		return nil, fmt.Errorf("parse TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
	} else {
		cfg.CookieSecure = cfg.IsProduction()
	}

	if v := os.Getenv("TELEGRAM_TEACHER_CHAT_ID"); v != "" {
		cfg.TelegramTeacherChatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_TEACHER_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UploadsEnabled настроено ли хранилище фотографий
func (c *Config) UploadsEnabled() bool {
	return c.GCSBucket != ""
}

// NotificationsEnabled настроены ли уведомления учителю
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != "" && c.TelegramTeacherChatID != 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
