package config

import (
	"os"
	"strconv"
	"time"

	"github.com/avagulans/inkpost/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables.
//
// A dotenv file is loaded first: the path given via -e/-envfile if present,
// otherwise ".env" in the working directory (missing files are ignored, and
// variables already set in the real environment win).
//
// Recognized variables:
//
//	ENDPOINT_ADDR                HTTP bind address
//	DATABASE_URL                 PostgreSQL DSN
//	SECRET_KEY                   JWT HMAC secret
//	ALGORITHM                    JWT signing algorithm
//	ACCESS_TOKEN_EXPIRE_MINUTES  access token validity, minutes
//	ALLOWED_ORIGINS              comma-separated CORS origins
//	COOKIE_AUTH                  enable the cookie token transport
//	INMEMORY_STORE               run against the in-memory store
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	config.EndpointAddr = getEnv("ENDPOINT_ADDR", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_URL", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.SigningAlgorithm = getEnv("ALGORITHM", config.SigningAlgorithm)

	minutes := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", int(config.AccessTokenValidityDuration.Minutes()))
	config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute

	config.AllowedOrigins = getEnv("ALLOWED_ORIGINS", config.AllowedOrigins)
	config.CookieAuth = getEnvBool("COOKIE_AUTH", config.CookieAuth)
	config.InMemoryStore = getEnvBool("INMEMORY_STORE", config.InMemoryStore)
}

// getEnv returns the value of an environment variable, or def if unset.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns an environment variable as an integer, or def if the
// variable is absent or not a number.
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvBool returns an environment variable as a bool, or def if the
// variable is absent or not parseable.
func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
