package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const defaultJWTSecret = "default-secret-key-change-me"

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	AI        AIConfig
}

type ServerConfig struct {
	Port     string
	GinMode  string
	LogLevel string
}

// StoreConfig selects where collection snapshots live.
type StoreConfig struct {
	Backend         string // file, sql or redis
	DataDir         string
	RedisPrefix     string
	SerializeWrites bool
}

type DatabaseConfig struct {
	Driver   string // sqlite, postgres or mysql
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
	BCryptCost     int
}

type SessionConfig struct {
	Enabled bool
	Store   string // cookie or redis
	Secret  string
	MaxAge  int
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	BurstSize      int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type AIConfig struct {
	OpenAIAPIKey string
	Model        string
	BaseURL      string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			GinMode:  getEnv("GIN_MODE", "debug"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend:         getEnv("STORE_BACKEND", "file"),
			DataDir:         getEnv("STORE_DATA_DIR", "data"),
			RedisPrefix:     getEnv("STORE_REDIS_PREFIX", "teamly"),
			SerializeWrites: getEnvAsBool("STORE_SERIALIZE_WRITES", false),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "teamly"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "teamly"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			Path:     getEnv("DB_PATH", "teamly.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenTTL: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
			BCryptCost:     getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		Session: SessionConfig{
			Enabled: getEnvAsBool("SESSION_ENABLED", true),
			Store:   getEnv("SESSION_STORE", "cookie"),
			Secret:  getEnv("SESSION_SECRET", defaultJWTSecret),
			MaxAge:  getEnvAsInt("SESSION_MAX_AGE", 86400*7),
		},
		RateLimit: RateLimitConfig{
			Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMin: getEnvAsInt("RATE_LIMIT_RPM", 30),
			BurstSize:      getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		AI: AIConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o"),
			BaseURL:      getEnv("OPENAI_BASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "file", "sql", "redis":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Store.Backend == "sql" {
		switch c.Database.Driver {
		case "sqlite", "postgres", "mysql":
		default:
			return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
		}
	}

	switch c.Session.Store {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}

	if c.Auth.BCryptCost < bcrypt.MinCost || c.Auth.BCryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT secret must be set in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetDatabaseDSN returns the DSN for the configured driver.
func (c *Config) GetDatabaseDSN() string {
	switch c.Database.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
			c.Database.SSLMode,
		)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	default:
		return c.Database.Path
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
