package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Port         int
	MongoURL     string
	MongoDB      string
	JWTSecret    string
	RedisAddr    string
	CORSOrigins  []string
	OTLPEndpoint string
}

func Load() Config {
	// best effort, env vars win over .env anyway
	_ = godotenv.Load()

	return Config{
		Env:          getEnv("APP_ENV", "dev"),
		Port:         getEnvInt("PORT", 3060),
		MongoURL:     getEnv("MONGO_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:      getEnv("MONGO_DB", "giftdb"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		CORSOrigins:  splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")

	out := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)

		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
		}

		return num
	}
	return fallback
}
