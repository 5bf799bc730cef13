package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Events   EventsConfig
	Cache    CacheConfig
	Tracing  TracingConfig
	Client   ClientConfig
	Display  DisplayConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimit          int
}

type DatabaseConfig struct {
	Driver      string // "postgres" or "sqlite"
	Connection  string
	AutoMigrate bool
	LogLevel    string
}

type EventsConfig struct {
	NatsURL  string
	RedisURL string
	Topic    string
}

type CacheConfig struct {
	ListTTL time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DisplayConfig struct {
	UpdateInterval time.Duration
	MaxNotes       int
	ShowTitle      bool
}

type AdminConfig struct {
	ToastDuration time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimit:          getEnvAsInt("BODY_LIMIT_BYTES", 1024*1024),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "sqlite"),
			Connection:  getEnv("DB_CONNECTION_STRING", "notes.db"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
			LogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
		},
		Events: EventsConfig{
			NatsURL:  getEnv("NATS_URL", ""),
			RedisURL: getEnv("REDIS_URL", ""),
			Topic:    getEnv("NOTE_EVENTS_TOPIC", "note_events"),
		},
		Cache: CacheConfig{
			ListTTL: getEnvAsDuration("LIST_CACHE_TTL", 0),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Client: ClientConfig{
			BaseURL: getEnv("NOTES_API_URL", "http://localhost:3000/api"),
			Timeout: getEnvAsDuration("NOTES_API_TIMEOUT", 10*time.Second),
		},
		Display: DisplayConfig{
			UpdateInterval: getEnvAsDuration("DISPLAY_UPDATE_INTERVAL", 60*time.Second),
			MaxNotes:       getEnvAsInt("DISPLAY_MAX_NOTES", 5),
			ShowTitle:      getEnvAsBool("DISPLAY_SHOW_TITLE", true),
		},
		Admin: AdminConfig{
			ToastDuration: getEnvAsDuration("ADMIN_TOAST_DURATION", 5*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "1m") or a bare
// integer, which is read as milliseconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
