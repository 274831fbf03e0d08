package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

type Config struct {
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=15s"`
	LogLevel   string        `env:"LOG_LEVEL,    default=info"`
	LogPretty  bool          `env:"LOG_PRETTY,   default=true"`

	Storage StorageConfig
	Sandbox SandboxConfig
	Metrics MetricsConfig
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND, default=file"`
	// Path is the JSON file used by the file backend. Empty means ~/.medapp/storage.json.
	Path  string `env:"STORAGE_PATH"`
	Redis RedisConfig
	Mongo MongoConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=medapp"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MetricsConfig names where client metrics are exported after each command.
// Both sinks are off when empty.
type MetricsConfig struct {
	Textfile       string `env:"METRICS_TEXTFILE"`
	PushgatewayURL string `env:"METRICS_PUSHGATEWAY"`
	Job            string `env:"METRICS_JOB, default=medapp"`
}

type SandboxConfig struct {
	Port         string `env:"SANDBOX_PORT,          default=8080"`
	JWTSecret    string `env:"SANDBOX_JWT_SECRET,    default=medapp-sandbox-secret"`
	SeedPassword string `env:"SANDBOX_SEED_PASSWORD, default=senha123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case StorageFile, StorageMemory, StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT must be positive, got %s", c.APITimeout)
	}
	return nil
}
