package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Scoring  ScoringConfig
	Profiles ProfilesConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig is optional. Sessions live in memory unless DB_HOST is set.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey            string
	EmbedModel        string
	RequestsPerSecond float64
}

type StorageConfig struct {
	ExportPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

type ScoringConfig struct {
	KeywordWeight     float64
	SemanticWeight    float64
	RequiredWeight    float64
	NiceWeight        float64
	EmbeddingWeight   float64
	StatisticalWeight float64
	MaxSuggestions    int
	SectionSplitter   string
	EmbeddingTimeout  time.Duration
}

type ProfilesConfig struct {
	Dir   string
	Watch bool
}

type SessionConfig struct {
	TTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_scorer"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "role_profiles"),
		},
		Gemini: GeminiConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			EmbedModel:        getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			RequestsPerSecond: getEnvAsFloat("GEMINI_RPS", 5),
		},
		Storage: StorageConfig{
			ExportPath:  getEnv("EXPORT_PATH", "./exports"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
		Scoring: ScoringConfig{
			KeywordWeight:     getEnvAsFloat("KEYWORD_WEIGHT", 0.6),
			SemanticWeight:    getEnvAsFloat("SEMANTIC_WEIGHT", 0.4),
			RequiredWeight:    getEnvAsFloat("REQUIRED_KEYWORD_WEIGHT", 3),
			NiceWeight:        getEnvAsFloat("NICE_KEYWORD_WEIGHT", 1),
			EmbeddingWeight:   getEnvAsFloat("EMBEDDING_WEIGHT", 0.7),
			StatisticalWeight: getEnvAsFloat("STATISTICAL_WEIGHT", 0.3),
			MaxSuggestions:    getEnvAsInt("MAX_SUGGESTIONS", 5),
			SectionSplitter:   strings.ToLower(getEnv("SECTION_SPLITTER", "heading")),
			EmbeddingTimeout:  getEnvAsDuration("EMBEDDING_TIMEOUT", "15s"),
		},
		Profiles: ProfilesConfig{
			Dir:   getEnv("ROLE_PROFILES_DIR", "./data/role_profiles"),
			Watch: getEnvAsBool("ROLE_PROFILES_WATCH", true),
		},
		Session: SessionConfig{
			TTL: getEnvAsDuration("SESSION_TTL", "2h"),
		},
	}
}

// DatabaseEnabled reports whether sessions should be persisted with gorm.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
