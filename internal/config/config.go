package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string `env:"ADDR" validate:"required"`
	DBDriver string `env:"DB_DRIVER" validate:"oneof=sqlite3 sqlite"`
	DBPath   string `env:"DB_PATH" validate:"required"`
	// Store selects where flashcards live. Everything else is always SQL.
	Store    string `env:"STORE" validate:"oneof=sqlite memory"`
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`

	// SRSMaxIntervalDays caps review intervals; zero leaves them uncapped.
	SRSMaxIntervalDays int `env:"SRS_MAX_INTERVAL_DAYS" validate:"gte=0"`

	QuestionWorkerCount int `env:"QUESTION_WORKER_COUNT" validate:"gte=1"`
	QuestionQueueSize   int `env:"QUESTION_QUEUE_SIZE" validate:"gte=1"`

	LLMProvider    string        `env:"LLM_PROVIDER" validate:"oneof=openai ollama anthropic gemini mock"`
	LLMModel       string        `env:"LLM_MODEL"`
	LLMBaseURL     string        `env:"LLM_BASE_URL" validate:"omitempty,url"`
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" validate:"gte=0"`
	LLMMaxAttempts int           `env:"LLM_MAX_ATTEMPTS" validate:"gte=1,lte=10"`

	ChatHistoryLimit int `env:"CHAT_HISTORY_LIMIT" validate:"gte=1,lte=100"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBDriver:            envOr("DB_DRIVER", "sqlite3"),
		DBPath:              envOr("DB_PATH", "ncertflash.db"),
		Store:               envOr("STORE", "sqlite"),
		LogLevel:            strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		SRSMaxIntervalDays:  envIntOr("SRS_MAX_INTERVAL_DAYS", 0),
		QuestionWorkerCount: envIntOr("QUESTION_WORKER_COUNT", 2),
		QuestionQueueSize:   envIntOr("QUESTION_QUEUE_SIZE", 32),
		LLMProvider:         envOr("LLM_PROVIDER", "ollama"),
		LLMModel:            os.Getenv("LLM_MODEL"),
		LLMBaseURL:          os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:           os.Getenv("LLM_API_KEY"),
		LLMTimeout:          envDurationOr("LLM_TIMEOUT", 60*time.Second),
		LLMMaxAttempts:      envIntOr("LLM_MAX_ATTEMPTS", 3),
		ChatHistoryLimit:    envIntOr("CHAT_HISTORY_LIMIT", 10),
	}
}

var validate = validator.New()

// Validate checks every field and reports all problems at once, naming the
// environment variable behind each.
func (c Config) Validate() error {
	cfg := c
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := envKey(fe.StructField())
	switch fe.Tag() {
	case "required":
		return key + " cannot be empty"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %q", key, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", key, fe.Value())
	}
	return fmt.Sprintf("%s is invalid (%s)", key, fe.Tag())
}

func envKey(field string) string {
	if f, ok := typeOfConfig.FieldByName(field); ok {
		if key := f.Tag.Get("env"); key != "" {
			return key
		}
	}
	return field
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

// envDurationOr accepts Go durations ("90s") or a bare number of seconds.
func envDurationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	return def
}

var typeOfConfig = reflect.TypeOf(Config{})
