package app

import (
	"fmt"

	server "github.com/admin/astro-transits/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/astro-transits/internal/adapters/secondary/alerter"
	ephemerisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/ephemeris"
	kafkaAdapter "github.com/admin/astro-transits/internal/adapters/secondary/kafka"
	"github.com/admin/astro-transits/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/astro-transits/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/astro-transits/internal/adapters/secondary/storage/s3"
	"github.com/admin/astro-transits/internal/pkg/logger"
	"github.com/admin/astro-transits/internal/usecases/transits"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    *server.Config            `envconfig:"APISERVER"`
	Log       *logger.Config            `envconfig:"LOG"`
	Ephemeris *ephemerisAdapter.Config  `envconfig:"EPHEMERIS"`
	Scan      *transits.Config          `envconfig:"SCAN"`
	Postgres  *pg.Config                `envconfig:"POSTGRES"`
	Redis     *redisAdapter.Config      `envconfig:"REDIS"`
	S3        *s3Adapter.Config         `envconfig:"S3"`
	Kafka     kafkaAdapter.KafkaConfigs `envconfig:"KAFKA"`
	Alerter   *alerterAdapter.Config    `envconfig:"ALERTER"`
}

// NewEnvConfig читает конфигурацию из окружения (и deployments/local/.env, если он есть)
func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// envconfig не умеет сам определять размер слайса, Kafka грузим вручную
	if err := cfg.Kafka.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}

	return cfg, nil
}
