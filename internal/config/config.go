package config

import (
	"strings"
	"time"
)

// Config holds runtime configuration for the API service.
type Config struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	AutoMigrate        bool
	JWTSecret          string
	TokenTTL           time.Duration
	AllowedOrigins     []string
	S3Endpoint         string
	S3Region           string
	S3Bucket           string
	S3AccessKey        string
	S3SecretKey        string
	S3PublicBaseURL    string
	UploadTimeout      time.Duration
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
}

// Load constructs a Config from environment variables.
func Load() Config {
	return Config{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", "postgres://glimpse:glimpse@db:5432/glimpse?sslmode=disable"),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "./db/migrations"),
		AutoMigrate:        GetBool("DB_AUTO_MIGRATE", true),
		JWTSecret:          GetString("JWT_SECRET", "supersecuresecret"),
		TokenTTL:           time.Duration(GetInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
		AllowedOrigins:     splitList(GetString("ALLOWED_ORIGINS", "http://localhost:3000")),
		S3Endpoint:         GetString("S3_ENDPOINT", ""),
		S3Region:           GetString("S3_REGION", "us-east-1"),
		S3Bucket:           GetString("S3_BUCKET", "glimpse-media"),
		S3AccessKey:        GetString("S3_ACCESS_KEY", ""),
		S3SecretKey:        GetString("S3_SECRET_KEY", ""),
		S3PublicBaseURL:    GetString("S3_PUBLIC_BASE_URL", ""),
		UploadTimeout:      time.Duration(GetInt("UPLOAD_TIMEOUT_SECONDS", 15)) * time.Second,
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
