package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// PostgreSQL
	DBHost     string        `envconfig:"DB_HOST" required:"true"`
	DBPort     string        `envconfig:"DB_PORT" default:"5432"`
	DBUser     string        `envconfig:"DB_USER" required:"true"`
	DBName     string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32         `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`
	// Secret field, loaded from Docker secrets (env fallback)
	DBPassword string

	// Redis (upload-channel tokens and rate-limit store)
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Secret field, loaded from Docker secrets (env fallback)
	RedisPassword string

	// JWT verification of tokens issued by the external auth provider.
	// Secret field, loaded from Docker secrets (env fallback)
	JWTSecret string

	// Image generation provider (OpenAI-compatible)
	OpenAIBaseURL     string        `envconfig:"OPENAI_BASE_URL" default:""`
	ImageModel        string        `envconfig:"IMAGE_MODEL" default:"dall-e-3"`
	GenerationTimeout time.Duration `envconfig:"GENERATION_TIMEOUT" default:"60s"`
	ImageFetchTimeout time.Duration `envconfig:"IMAGE_FETCH_TIMEOUT" default:"30s"`
	// Secret field, loaded from Docker secrets (env fallback)
	OpenAIAPIKey string

	// Public origin of this server, used to build direct-upload URLs.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Asset store
	AssetSavePath      string        `envconfig:"ASSET_SAVE_PATH" required:"true"`
	AssetPublicBaseURL string        `envconfig:"ASSET_PUBLIC_BASE_URL" required:"true"`
	UploadTokenTTL     time.Duration `envconfig:"UPLOAD_TOKEN_TTL" default:"15m"`
	MaxUploadBytes     int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`

	// Print service stub
	PrintBaseURL string `envconfig:"PRINT_BASE_URL" default:"https://print-demo.com"`

	// Rate limit for the AI generation endpoint (requests per minute per user)
	GenerationRateLimit uint `envconfig:"GENERATION_RATE_LIMIT" default:"5"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	var err error
	if cfg.DBPassword, err = readSecret("db_password", "DB_PASSWORD", true); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = readSecret("jwt_secret", "JWT_SECRET", true); err != nil {
		return nil, err
	}
	if cfg.OpenAIAPIKey, err = readSecret("openai_api_key", "OPENAI_API_KEY", true); err != nil {
		return nil, err
	}
	// Redis password is optional
	cfg.RedisPassword, _ = readSecret("redis_password", "REDIS_PASSWORD", false)

	return &cfg, nil
}

// readSecret reads a secret from the standard Docker Secrets path, falling
// back to the given environment variable when no secret file is present.
func readSecret(secretName, envName string, required bool) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	if secretBytes, err := os.ReadFile(filePath); err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret != "" {
			return secret, nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v, nil
	}
	if required {
		return "", fmt.Errorf("secret %s is not set (checked %s and env %s)", secretName, filePath, envName)
	}
	return "", nil
}
