package config

import (
	"errors"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPPort int `env:"HTTP_PORT" env-default:"8080"`

	PostgresHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" env-default:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" env-default:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" env-default:"projecttrack"`
	PostgresSSLMode  string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	PostgresMaxConn  int32  `env:"POSTGRES_MAX_CONN" env-default:"5"`
	MigrationsDir    string `env:"MIGRATIONS_DIR" env-default:"migrations"`

	SurrealEndpoint  string `env:"SURREAL_ENDPOINT" env-default:"ws://localhost:8000"`
	SurrealNamespace string `env:"SURREAL_NAMESPACE" env-default:"projecttrack"`
	SurrealDatabase  string `env:"SURREAL_DATABASE" env-default:"projecttrack"`
	SurrealUser      string `env:"SURREAL_USER" env-default:"root"`
	SurrealPassword  string `env:"SURREAL_PASSWORD" env-default:"root"`

	S3Endpoint        string `env:"S3_ENDPOINT" env-default:""`
	S3Region          string `env:"S3_REGION" env-default:"us-east-1"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY" env-default:""`
	S3Bucket          string `env:"S3_BUCKET" env-default:"projecttrack-files"`

	RedisURL string `env:"REDIS_URL" env-default:"localhost:6379"`

	// Comma-separated broker list; empty disables the audit fan-out.
	KafkaBrokers    string `env:"KAFKA_BROKERS" env-default:""`
	KafkaAuditTopic string `env:"KAFKA_AUDIT_TOPIC" env-default:"projecttrack.audit"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"dev-secret"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`
}

func New() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig("./config/.env", &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}
