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
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir  string `json:"log_dir"`
	TempDir string `json:"temp_dir"`

	// CORS Configuration
	CORS CORSConfig `json:"cors"`

	// Rate Limiting
	RateLimit RateLimitConfig `json:"rate_limit"`

	// Database settings
	Database DatabaseConfig `json:"database"`

	// Artifact storage
	Storage StorageConfig `json:"storage"`

	// OpenAI backends
	OpenAI OpenAIConfig `json:"openai"`

	// Upload limits
	Upload UploadConfig `json:"upload"`

	// Application version
	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type StorageConfig struct {
	// Driver selects the artifact store: "disk" (default) or "spaces".
	Driver string `json:"driver"`
	Root   string `json:"root"`

	SpacesAccessKey string `json:"-"`
	SpacesSecretKey string `json:"-"`
	SpacesRegion    string `json:"spaces_region"`
	SpacesEndpoint  string `json:"spaces_endpoint"`
	SpacesBucket    string `json:"spaces_bucket"`
}

type OpenAIConfig struct {
	APIKey string `json:"-"`

	// TranscribeLanguage is the fixed target language passed to the
	// speech-to-text backend.
	TranscribeLanguage string `json:"transcribe_language"`

	// CompletionModel is the chat model used for streamed generation.
	CompletionModel string `json:"completion_model"`
}

type UploadConfig struct {
	// MaxUploadSize bounds the multipart body of POST /videos, in bytes.
	MaxUploadSize int64 `json:"max_upload_size"`
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
	BurstSize         int  `json:"burst_size"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// A missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Minute),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		LogDir:  getEnv("LOG_DIR", "./logs"),
		TempDir: getEnv("TEMP_DIR", os.TempDir()),

		Version: getEnv("VERSION", "1.0.0"),

		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST_SIZE", 10),
		},

		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/upload-ai.db"),
		},

		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "disk"),
			Root:            getEnv("STORAGE_ROOT", "./data/uploads"),
			SpacesAccessKey: getEnv("SPACES_ACCESS_KEY", ""),
			SpacesSecretKey: getEnv("SPACES_SECRET_KEY", ""),
			SpacesRegion:    getEnv("SPACES_REGION", "us-east-1"),
			SpacesEndpoint:  getEnv("SPACES_ENDPOINT", ""),
			SpacesBucket:    getEnv("SPACES_BUCKET", ""),
		},

		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			TranscribeLanguage: getEnv("TRANSCRIBE_LANGUAGE", "pt"),
			CompletionModel:    getEnv("COMPLETION_MODEL", "gpt-3.5-turbo-16k"),
		},

		Upload: UploadConfig{
			MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 25*1024*1024),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Storage.Driver != "disk" && c.Storage.Driver != "spaces" {
		return fmt.Errorf("unknown STORAGE_DRIVER: %s", c.Storage.Driver)
	}
	if c.Storage.Driver == "spaces" && (c.Storage.SpacesBucket == "" || c.Storage.SpacesEndpoint == "") {
		return fmt.Errorf("SPACES_BUCKET and SPACES_ENDPOINT are required for the spaces driver")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
