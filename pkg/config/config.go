package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from the defaults below,
// then an optional YAML file, then the environment.
type Config struct {
	Port                    string        `yaml:"port"`
	Env                     string        `yaml:"env"`
	DBDriver                string        `yaml:"db_driver"`
	PostgresConnStr         string        `yaml:"postgres_conn_str"`
	SQLitePath              string        `yaml:"sqlite_path"`
	MongoURI                string        `yaml:"mongo_uri"`
	MongoDatabase           string        `yaml:"mongo_database"`
	CacheBackend            string        `yaml:"cache_backend"`
	IndexCacheTTL           time.Duration `yaml:"index_cache_ttl"`
	PostsPerPage            int           `yaml:"posts_per_page"`
	JWTSecret               string        `yaml:"jwt_secret"`
	SessionTTL              time.Duration `yaml:"session_ttl"`
	MediaRoot               string        `yaml:"media_root"`
	FirebaseCredentialsPath string        `yaml:"firebase_credentials_path"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:          "8080",
		Env:           "development",
		DBDriver:      "postgres",
		SQLitePath:    "yatube.db",
		MongoDatabase: "yatube",
		CacheBackend:  "memory",
		IndexCacheTTL: 20 * time.Second,
		PostsPerPage:  10,
		JWTSecret:     "supersecretjwtkey",
		SessionTTL:    72 * time.Hour,
		MediaRoot:     "media",
	}
}

// Load builds the configuration. path names an optional YAML file.
func Load(path string) (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.PostgresConnStr = getEnv("POSTGRES_CONN_STR", cfg.PostgresConnStr)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.MongoURI = getEnv("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.CacheBackend = getEnv("CACHE_BACKEND", cfg.CacheBackend)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.MediaRoot = getEnv("MEDIA_ROOT", cfg.MediaRoot)
	cfg.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.FirebaseCredentialsPath)

	var err error
	if cfg.IndexCacheTTL, err = getEnvDuration("INDEX_CACHE_TTL", cfg.IndexCacheTTL); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.PostsPerPage, err = getEnvInt("POSTS_PER_PAGE", cfg.PostsPerPage); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresConnStr == "" {
			return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q, want postgres or sqlite", c.DBDriver)
	}
	switch c.CacheBackend {
	case "memory":
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q, want memory or mongo", c.CacheBackend)
	}
	if c.PostsPerPage < 1 {
		return fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", c.PostsPerPage)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.Env == "production" && c.JWTSecret == Default().JWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
