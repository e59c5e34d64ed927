package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	StoreBackend      string
	QuizProfilePath   string
	GuessProfilePath  string
	DBPath            string
	LogLevel          string
	MaxRounds         int
	MaxInvalidInputs  int
	QuizQuestionsPath string
	QuizShuffle       bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	return Config{
		StoreBackend:      strings.ToLower(envOr("STORE_BACKEND", BackendFile)),
		QuizProfilePath:   envOr("QUIZ_PROFILE_PATH", "userProfiles.txt"),
		GuessProfilePath:  envOr("GUESS_PROFILE_PATH", "profiles.txt"),
		DBPath:            envOr("DB_PATH", "file:playstats.db"),
		LogLevel:          envOr("LOG_LEVEL", "WARN"),
		MaxRounds:         envIntOr("MAX_ROUNDS", 20),
		MaxInvalidInputs:  envIntOr("MAX_INVALID_INPUTS", 10),
		QuizQuestionsPath: envOr("QUIZ_QUESTIONS_PATH", ""),
		QuizShuffle:       envBoolOr("QUIZ_SHUFFLE", false),
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.QuizProfilePath == "" {
			return fmt.Errorf("QUIZ_PROFILE_PATH cannot be empty")
		}
		if c.GuessProfilePath == "" {
			return fmt.Errorf("GUESS_PROFILE_PATH cannot be empty")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, c.StoreBackend)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("MAX_ROUNDS must be at least 1, got %d", c.MaxRounds)
	}
	if c.MaxInvalidInputs < 1 {
		return fmt.Errorf("MAX_INVALID_INPUTS must be at least 1, got %d", c.MaxInvalidInputs)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
