package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port           string
	BodyLimitBytes int

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	AIServiceURL  string
	ChromePath    string
	ExportTimeout time.Duration

	S3 S3Config

	MaxUploadBytes int64

	LogLevel  string
	LogFormat string
}

// S3Config is empty (Bucket == "") when uploads are not configured.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		BodyLimitBytes: getEnvInt("BODY_LIMIT_BYTES", 4<<20),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "resume_builder"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "resume-builder"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60*24),

		AIServiceURL:  os.Getenv("AI_SERVICE_URL"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		ExportTimeout: getEnvDuration("EXPORT_TIMEOUT", 45*time.Second),

		S3: S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: os.Getenv("S3_PUBLIC_URL"),
		},
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("30s") or plain seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
