package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramToken string
	GroqAPIKey    string

	LogLevel string
	Debug    bool

	GroqBaseURL     string
	GroqModel       string
	GroqTemperature float64
	GroqMaxTokens   int
	GroqMaxRetries  int

	MaxInputLength int
	MaxConcurrent  int
	RequestTimeout time.Duration
	HTTPTimeout    time.Duration

	TrendDataPath string
	OutputDir     string
}

// Load reads configuration from the environment. The Telegram token is
// optional here; LoadBot enforces it for the bot entry point.
func Load() (Config, error) {
	cfg := Config{
		LogLevel:        strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", "info"))),
		Debug:           getEnvBool("DEBUG", false),
		GroqBaseURL:     strings.TrimSpace(getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1")),
		GroqModel:       strings.TrimSpace(getEnv("GROQ_MODEL", "llama-3.3-70b-versatile")),
		GroqTemperature: getEnvFloat("GROQ_TEMPERATURE", 0.7),
		GroqMaxTokens:   getEnvInt("GROQ_MAX_TOKENS", 2048),
		GroqMaxRetries:  getEnvInt("GROQ_MAX_RETRIES", 2),
		MaxInputLength:  getEnvInt("MAX_INPUT_LENGTH", 2000),
		MaxConcurrent:   getEnvInt("MAX_CONCURRENT", 4),
		RequestTimeout:  time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,
		TrendDataPath:   strings.TrimSpace(getEnv("TREND_DATA_PATH", "data/trending_elements.json")),
		OutputDir:       strings.TrimSpace(getEnv("OUTPUT_DIR", "output")),
	}

	cfg.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	cfg.GroqAPIKey = strings.TrimSpace(os.Getenv("GROQ_API_KEY"))

	if cfg.GroqAPIKey == "" {
		return Config{}, errors.New("GROQ_API_KEY is required")
	}

	if cfg.MaxInputLength < 1 {
		cfg.MaxInputLength = 2000
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.GroqMaxTokens < 1 {
		cfg.GroqMaxTokens = 2048
	}
	if cfg.GroqMaxRetries < 0 {
		cfg.GroqMaxRetries = 0
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 120 * time.Second
	}

	return cfg, nil
}

// LoadBot is Load plus the bot-only requirements.
func LoadBot() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if cfg.TelegramToken == "" {
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
