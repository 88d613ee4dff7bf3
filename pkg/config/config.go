package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Password PasswordConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ECOSPRINT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"ECOSPRINT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOSPRINT_LOG_WARN_STACK" default:"false"`

	// StartEmpty skips the sample catalog when the products key has never
	// been written.
	StartEmpty bool `envconfig:"ECOSPRINT_START_EMPTY" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	// Driver selects the key-value backend: sqlite, redis or memory.
	Driver string `envconfig:"ECOSPRINT_STORAGE_DRIVER" default:"sqlite"`
	// Path is the SQLite database file used by the sqlite driver.
	Path string `envconfig:"ECOSPRINT_STORAGE_PATH" default:"ecosprint.db"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverSQLite, StorageDriverRedis, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
	if s.Driver == StorageDriverSQLite && strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("sqlite storage requires a path")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ECOSPRINT_REDIS_URL"`
	Address      string        `envconfig:"ECOSPRINT_REDIS_ADDR"`
	Password     string        `envconfig:"ECOSPRINT_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECOSPRINT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECOSPRINT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECOSPRINT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECOSPRINT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECOSPRINT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECOSPRINT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ECOSPRINT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ECOSPRINT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ECOSPRINT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ECOSPRINT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ECOSPRINT_ARGON_KEY_LEN" default:"32"`
}
