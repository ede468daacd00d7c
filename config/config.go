package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP         HTTP
		Log          Log
		PG           PG
		S3           S3
		OutboxRelay  OutboxRelay
		Kafka        Kafka
		Media        Media
		Verification Verification
		Swagger      Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		PublicURL      string        `env:"S3_PUBLIC_URL,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS,required"`
		Topic   string   `env:"KAFKA_TOPIC,required"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	Media struct {
		AvatarsFolder string `env:"MEDIA_AVATARS_FOLDER" envDefault:"avatars"`
		PostsFolder   string `env:"MEDIA_POSTS_FOLDER" envDefault:"posts"`
	}

	Verification struct {
		BaseURL  string        `env:"VERIFICATION_BASE_URL,required"`
		FromAddr string        `env:"VERIFICATION_FROM_ADDR,required"`
		KeyTTL   time.Duration `env:"VERIFICATION_KEY_TTL" envDefault:"30m"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
