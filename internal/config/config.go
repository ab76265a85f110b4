package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	TokenExpiry     time.Duration
	StreamAPIKey    string
	StreamAPISecret string
	CORSOrigin      string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one is present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "linguaconnect"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StreamAPIKey:    os.Getenv("STREAM_API_KEY"),
		StreamAPISecret: os.Getenv("STREAM_API_SECRET"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	cfg.TokenExpiry = 7 * 24 * time.Hour
	if raw := os.Getenv("TOKEN_EXPIRY"); raw != "" {
		expiry, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid TOKEN_EXPIRY %q: %v", raw, err)
		}
		cfg.TokenExpiry = expiry
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
