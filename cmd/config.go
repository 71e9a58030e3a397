package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"postal/internal/adapters/out/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort string `validate:"required,numeric"`
	Storage  string `validate:"oneof=memory postgres"`
	DataDir  string `validate:"required_if=Storage memory"`

	DBHost     string `validate:"required_if=Storage postgres"`
	DBPort     int    `validate:"required_if=Storage postgres,gte=0,lte=65535"`
	DBUser     string `validate:"required_if=Storage postgres"`
	DBPassword string
	DBName     string `validate:"required_if=Storage postgres"`
	DBSslMode  string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	// RedisAddr selects the Redis session store; empty keeps sessions in process.
	RedisAddr          string
	SecurityAPIURL     string        `validate:"required,url"`
	SecurityAPITimeout time.Duration `validate:"gt=0"`
	SessionTTL         time.Duration `validate:"gt=0"`

	// MQTTBroker enables notification publishing when set.
	MQTTBroker      string `validate:"omitempty,url"`
	MQTTClientID    string
	MQTTTopicPrefix string

	LogLevel  string `validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `validate:"omitempty,oneof=json console"`
	LogFile   string

	DelaySchedule    string
	SnapshotSchedule string
}

func (c Config) Postgres() postgres.ConnectionSettings {
	return postgres.ConnectionSettings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// LoadConfig reads the environment, after loading .env when the file exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	cfg := Config{
		HTTPPort:           env("HTTP_PORT", "8080"),
		Storage:            env("STORAGE", StorageMemory),
		DataDir:            env("DATA_DIR", "./data"),
		DBHost:             env("DB_HOST", ""),
		DBPort:             envInt("DB_PORT", 5432, &errs),
		DBUser:             env("DB_USER", ""),
		DBPassword:         env("DB_PASSWORD", ""),
		DBName:             env("DB_NAME", ""),
		DBSslMode:          env("DB_SSLMODE", "disable"),
		RedisAddr:          env("REDIS_ADDR", ""),
		SecurityAPIURL:     env("SECURITY_API_URL", "http://localhost:5000"),
		SecurityAPITimeout: envDuration("SECURITY_API_TIMEOUT", 10*time.Second, &errs),
		SessionTTL:         envDuration("SESSION_TTL", 8*time.Hour, &errs),
		MQTTBroker:         env("MQTT_BROKER", ""),
		MQTTClientID:       env("MQTT_CLIENT_ID", "postal"),
		MQTTTopicPrefix:    env("MQTT_TOPIC_PREFIX", "postal"),
		LogLevel:           env("LOG_LEVEL", "info"),
		LogFormat:          env("LOG_FORMAT", "json"),
		LogFile:            env("LOG_FILE", ""),
		DelaySchedule:      env("DELAY_SCHEDULE", ""),
		SnapshotSchedule:   env("SNAPSHOT_SCHEDULE", ""),
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	raw := env(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func envDuration(key string, def time.Duration, errs *[]error) time.Duration {
	raw := env(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}
