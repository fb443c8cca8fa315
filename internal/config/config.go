package config

import (
	"errors"  // Validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For case-insensitive driver names

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds the application configuration
type Config struct {
	AppPort       string // Application port
	DatabaseURL   string // Full connection string, overrides the discrete DB fields
	DBDriver      string // postgres or mysql
	DBUser        string // Database user
	DBPassword    string // Database password
	DBHost        string // Database host
	DBPort        string // Database port
	DBName        string // Database name
	DBSSLMode     string // Postgres sslmode
	JWTSecret     string // JWT secret key
	EmailUser     string // SMTP account, also the From address
	EmailPass     string // SMTP password
	SMTPHost      string // SMTP server host
	SMTPPort      string // SMTP server port
	CORSOrigin    string // Allowed browser origin
	RedisAddr     string // Redis server address
	RedisPass     string // Redis password
	RedisDB       int    // Redis database number
	IsProd        bool   // Is production environment
	LogLevel      string // logrus level name
	CacheTTLSecs  int    // TTL of cached catalog and rating reads
	AuthRateLimit int    // Requests per minute per client on auth endpoints
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = getEnv("PORT", "5000") // Hosting platforms usually set PORT
	}
	return &Config{
		AppPort:       port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		IsProd:        os.Getenv("IS_PROD") == "true",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CacheTTLSecs:  getEnvInt("CACHE_TTL_SECONDS", 60),
		AuthRateLimit: getEnvInt("AUTH_RATE_LIMIT", 10),
	}
}

// Validate reports configuration that would make the server unusable
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
	default:
		return errors.New("DB_DRIVER must be postgres or mysql")
	}
	if c.DatabaseURL == "" && c.DBName == "" {
		return errors.New("either DATABASE_URL or DB_NAME is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
