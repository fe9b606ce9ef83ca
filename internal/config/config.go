package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	WatsonxAPIKey    string
	WatsonxProjectID string
	MongoDBURI       string
	DatabaseName     string
	Port             string
	SessionTTL       time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	required := []string{
		"TWILIO_ACCOUNT_SID",
		"TWILIO_AUTH_TOKEN",
		"MONGODB_URI",
	}

	var missing []string
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		log.Fatal().Msgf("Missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if os.Getenv("WATSONX_API_KEY") == "" {
		log.Warn().Msg("WATSONX_API_KEY not set; the guide will answer free-text questions with an apology")
	}

	return &Config{
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       getEnv("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886"),
		WatsonxAPIKey:    os.Getenv("WATSONX_API_KEY"),
		WatsonxProjectID: os.Getenv("WATSONX_PROJECT_ID"),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		DatabaseName:     getEnv("DATABASE_NAME", "paurax"),
		Port:             getEnv("PORT", "3000"),
		SessionTTL:       getDuration("SESSION_TTL", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatal().Msgf("Invalid %s: %v", key, err)
	}
	return d
}
