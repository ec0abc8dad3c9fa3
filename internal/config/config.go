package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DatabaseURL       string
	JWTSecret         string
	JWTAlgorithm      string
	AccessTokenTTLMin int
}

func Load() *Config {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "userhub"),
		DBPassword:        getEnv("DB_PASSWORD", "userhub_dev_password"),
		DBName:            getEnv("DB_NAME", "userhub"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTAlgorithm:      getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTLMin: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	))

	return cfg
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}

	return n
}
