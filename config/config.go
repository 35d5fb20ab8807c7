package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/hsbali/social-media-app-server/pkg/constant"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTLSec  int
	RefreshTokenTTLSec int
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	accessTTL := constant.AccessTokenTTLSeconds
	if env == "development" {
		accessTTL = constant.DevAccessTokenTTLSeconds
	}

	return &Config{
		Env:                env,
		Port:               getEnv("PORT", "3000"),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTLSec:  getEnvAsInt("ACCESS_TOKEN_TTL", accessTTL),
		RefreshTokenTTLSec: getEnvAsInt("REFRESH_TOKEN_TTL", constant.RefreshTokenTTLSeconds),
	}
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
