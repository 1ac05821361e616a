package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is everything the dashboard reads from the environment. The only
// required knob in practice is the remote API base URL; Redis and Kafka are
// optional integrations that stay off when unset.
type Config struct {
	ListenAddr   string
	APIBaseURL   string
	JWTSecret    string
	RedisAddr    string
	KafkaBrokers string
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8015"),
		APIBaseURL:   getEnv("API_BASE_URL", "http://127.0.0.1:8014"),
		JWTSecret:    getEnv("JWT_SECRET", "changeme"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
