package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr string
	JWTSecret string

	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string

	EvidenceURLTTL  time.Duration
	ScanDebounce    time.Duration
	OutboxRetention time.Duration
	LogLevel        slog.Level
}

var defaults = map[string]any{
	"HTTP_PORT":                 "8080",
	"DB_HOST":                   "localhost",
	"DB_PORT":                   "5432",
	"DB_USER":                   "postgres",
	"DB_PASSWORD":               "",
	"DB_NAME":                   "bookdesk",
	"DB_SSLMODE":                "disable",
	"KAFKA_HOST":                "",
	"KAFKA_ORDER_CHANGED_TOPIC": "order.status.changed",
	"REDIS_ADDR":                "",
	"JWT_SECRET":                "",
	"S3_ENDPOINT":               "",
	"S3_REGION":                 "auto",
	"S3_ACCESS_KEY_ID":          "",
	"S3_SECRET_ACCESS_KEY":      "",
	"S3_BUCKET":                 "",
	"EVIDENCE_URL_TTL_SECONDS":  3600,
	"SCAN_DEBOUNCE_MS":          3000,
	"OUTBOX_RETENTION_HOURS":    168,
	"LOG_LEVEL":                 "info",
}

// LoadConfig reads envFile when it exists, then the process environment.
// Environment variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v.GetString("LOG_LEVEL")))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		S3Endpoint:             v.GetString("S3_ENDPOINT"),
		S3Region:               v.GetString("S3_REGION"),
		S3AccessKeyID:          v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:      v.GetString("S3_SECRET_ACCESS_KEY"),
		S3Bucket:               v.GetString("S3_BUCKET"),
		EvidenceURLTTL:         time.Duration(v.GetInt("EVIDENCE_URL_TTL_SECONDS")) * time.Second,
		ScanDebounce:           time.Duration(v.GetInt("SCAN_DEBOUNCE_MS")) * time.Millisecond,
		OutboxRetention:        time.Duration(v.GetInt("OUTBOX_RETENTION_HOURS")) * time.Hour,
		LogLevel:               level,
	}, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// ValidateServe checks the settings only the serve command needs.
func (c Config) ValidateServe() error {
	var missing []error
	if c.JWTSecret == "" {
		missing = append(missing, errors.New("JWT_SECRET is required"))
	}
	if len(c.KafkaBrokers()) == 0 {
		missing = append(missing, errors.New("KAFKA_HOST is required"))
	}
	if c.S3Bucket == "" {
		missing = append(missing, errors.New("S3_BUCKET is required"))
	}
	if c.EvidenceURLTTL <= 0 {
		missing = append(missing, errors.New("EVIDENCE_URL_TTL_SECONDS must be positive"))
	}
	return errors.Join(missing...)
}
