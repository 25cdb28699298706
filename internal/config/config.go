package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      []byte
	AccessTokenTTL time.Duration
	RedisAddress   string
	RedisPassword  string
	AllowedOrigins []string
	MigrationsPath string
}

// Load reads configuration from the environment (optionally seeded from a
// .env file). Missing required values are a fatal startup condition.
func Load() *Config {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		panic("SECRET_KEY environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	tokenTTL := 30 * time.Minute
	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			panic("ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	redisAddress := os.Getenv("REDIS_ADDRESS")
	if redisAddress == "" {
		redisAddress = "localhost:6379"
	}

	allowedOrigins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = strings.Split(raw, ",")
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	return &Config{
		Port:           port,
		DatabaseURL:    databaseURLFromEnv(),
		JWTSecret:      []byte(secret),
		AccessTokenTTL: tokenTTL,
		RedisAddress:   redisAddress,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: allowedOrigins,
		MigrationsPath: migrationsPath,
	}
}

// databaseURLFromEnv assembles the connection URL from the discrete DB_*
// variables. All five are required; the process refuses to start otherwise.
func databaseURLFromEnv() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")

	if host == "" || port == "" || name == "" || user == "" || password == "" {
		panic("Could not find required database environment variables (ie. DB_HOST, DB_PORT, DB_NAME, DB_USER, or DB_PASSWORD).")
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)
}
