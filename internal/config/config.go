package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	// AdminEmail and AdminPassword seed the bootstrap admin account
	// (cmd/seed). Admin authority itself is a role flag, never an email
	// comparison.
	AdminEmail    string
	AdminPassword string

	// RolePrefixes maps an email local-part prefix to the role assigned at
	// registration, e.g. "admin=admin,emp=employee,sub=subemployee".
	// Empty disables prefix inference and every registration gets role user.
	RolePrefixes map[string]string

	SendGridAPIKey string
	EmailFrom      string

	PhoneVerifyAPIKey  string
	PhoneVerifyBaseURL string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/citybackend?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@city.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "change-me"),

		RolePrefixes: parsePrefixes(getEnv("ROLE_PREFIXES", "admin=admin,emp=employee,sub=subemployee")),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@city.local"),

		PhoneVerifyAPIKey:  os.Getenv("PHONE_VERIFY_API_KEY"),
		PhoneVerifyBaseURL: getEnv("PHONE_VERIFY_BASE_URL", "https://2factor.in/API/V1"),
	}
}

func parsePrefixes(raw string) map[string]string {
	prefixes := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		prefix, role, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || prefix == "" || role == "" {
			continue
		}
		prefixes[strings.ToLower(prefix)] = strings.ToLower(role)
	}
	return prefixes
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
