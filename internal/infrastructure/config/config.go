package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Question bank
	QuestionsPath string // JSON array of questions
	PageSize      int    // questions per day batch
	MaxDay        int

	// Persistence
	StoreBackend string // "json" or "sqlite"
	DataDir      string // JSON documents, one file each
	SQLitePath   string

	GradingPolicy string // "strict" or "partial"
	LogLevel      slog.Level
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		QuestionsPath:   getenvDefault("QUESTIONS_PATH", "questions.json"),
		PageSize:        getenvInt("PAGE_SIZE", 40),
		MaxDay:          getenvInt("MAX_DAY", 7),
		StoreBackend:    getenvDefault("STORE_BACKEND", "json"),
		DataDir:         getenvDefault("DATA_DIR", "data"),
		SQLitePath:      getenvDefault("SQLITE_PATH", "daycards.db"),
		GradingPolicy:   getenvDefault("GRADING_POLICY", "strict"),
		LogLevel:        getLevel("LOG_LEVEL"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("config: %s=%q is not a positive integer", k, v)
	}
	return n
}

func getLevel(k string) slog.Level {
	var level slog.Level
	if v := os.Getenv(k); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			log.Fatalf("config: %s=%q is not a valid log level: %v", k, v, err)
		}
	}
	return level
}
