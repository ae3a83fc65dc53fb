package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers    []string
	PredictionTopic string
	EventsEnabled   bool

	// Classifier
	ClassifierBackend   string // "artifact" or "remote"
	ModelArtifactDir    string
	ModelName           string
	ClassifierURL       string
	CollaboratorTimeout time.Duration

	// Risk stratification bands
	RiskHighThreshold     float64
	RiskModerateThreshold float64

	// Diagnosis taxonomy
	DiagnosisCatalogPath string

	// Patient store
	PatientCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "chronicare"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "chronicare123"),
		PostgresDB:       getEnv("POSTGRES_DB", "chronicare"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:    getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		PredictionTopic: getEnv("PREDICTION_TOPIC", "predictions.completed"),
		EventsEnabled:   getBoolEnv("EVENTS_ENABLED", false),

		ClassifierBackend:   getEnv("CLASSIFIER_BACKEND", "artifact"),
		ModelArtifactDir:    getEnv("MODEL_ARTIFACT_DIR", "./artifacts"),
		ModelName:           getEnv("MODEL_NAME", "chronic_disease"),
		ClassifierURL:       getEnv("CLASSIFIER_URL", ""),
		CollaboratorTimeout: getDuration("COLLABORATOR_TIMEOUT", 10*time.Second),

		RiskHighThreshold:     getFloatEnv("RISK_HIGH_THRESHOLD", 0.8),
		RiskModerateThreshold: getFloatEnv("RISK_MODERATE_THRESHOLD", 0.6),

		DiagnosisCatalogPath: getEnv("DIAGNOSIS_CATALOG_PATH", ""),

		PatientCacheTTL: getDuration("PATIENT_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
