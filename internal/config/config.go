package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the immutable set of runtime settings read once by the
// composition root, which passes its fields to the database, cache, CORS
// and server setup. No service or middleware constructor receives it:
// middleware.GetJWTSecret and the user service read JWT_SECRET from the
// environment themselves, so JWTSecret here is not the key that signs or
// verifies tokens.
type Config struct {
	Port          string
	GinMode       string
	DatabaseDSN   string
	JWTSecret     string
	FrontendURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configs/.env (if present and not running under RENDER) and
// then os.Getenv, applying the teacher's fallback defaults.
func Load() Config {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Println("config: no configs/.env file found, using system environment variables")
		}
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       os.Getenv("GIN_MODE"),
		DatabaseDSN:   buildDSN(),
		JWTSecret:     jwtSecret(),
		FrontendURL:   os.Getenv("FRONTEND_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
	}
}

func buildDSN() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dbHost := getEnv("DB_HOST", "localhost")
		dbPort := getEnv("DB_PORT", "5432")
		dbUser := getEnv("DB_USER", "postgres")
		dbPassword := getEnv("DB_PASSWORD", "postgres")
		dbName := getEnv("DB_NAME", "postgres")
		dbSslMode := getEnv("DB_SSLMODE", "disable")

		return "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode
	}

	if !strings.Contains(dsn, "sslmode=") {
		if strings.Contains(dsn, "?") {
			dsn += "&sslmode=require"
		} else {
			dsn += "?sslmode=require"
		}
	}
	return dsn
}

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // development fallback only
	}
	return secret
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
