package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	TelephonyBaseURL    string
	TelephonyAccountID  string
	TelephonyAuthToken  string
	TelephonyFromNumber string
	WhatsAppFromNumber  string
	ProviderTimeout     time.Duration
	DialTimeout         time.Duration

	SpeechBaseURL      string
	SpeechAPIKey       string
	SpeechDefaultVoice string

	VerificationCodeTTL     time.Duration
	VerificationMaxAttempts int
	VerifiedNumberTTL       time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=callbox port=5432 sslmode=disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		TelephonyBaseURL:    getEnv("TELEPHONY_BASE_URL", "https://api.twilio.com"),
		TelephonyAccountID:  getEnv("TELEPHONY_ACCOUNT_ID", ""),
		TelephonyAuthToken:  getEnv("TELEPHONY_AUTH_TOKEN", ""),
		TelephonyFromNumber: getEnv("TELEPHONY_FROM_NUMBER", ""),
		WhatsAppFromNumber:  getEnv("WHATSAPP_FROM_NUMBER", ""),
		ProviderTimeout:     getEnvDuration("PROVIDER_TIMEOUT", 15*time.Second),
		DialTimeout:         getEnvDuration("DIAL_TIMEOUT", 30*time.Second),

		SpeechBaseURL:      getEnv("SPEECH_BASE_URL", "https://api.elevenlabs.io"),
		SpeechAPIKey:       getEnv("SPEECH_API_KEY", ""),
		SpeechDefaultVoice: getEnv("SPEECH_DEFAULT_VOICE", "alloy"),

		VerificationCodeTTL:     getEnvDuration("VERIFICATION_CODE_TTL", 5*time.Minute),
		VerificationMaxAttempts: getEnvInt("VERIFICATION_MAX_ATTEMPTS", 3),
		VerifiedNumberTTL:       getEnvDuration("VERIFIED_NUMBER_TTL", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
