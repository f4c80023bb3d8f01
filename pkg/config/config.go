package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goodnight/goodnight/pkg/types"
)

const (
	EnvStorageBackend = "GOODNIGHT_STORAGE_BACKEND"
	EnvStoragePath    = "GOODNIGHT_STORAGE_PATH"
	EnvLogLevel       = "GOODNIGHT_LOG_LEVEL"
	EnvCurrency       = "GOODNIGHT_CURRENCY"

	DefaultEnvFile  = ".env"
	DefaultCurrency = "р"
)

func Default() types.Config {
	return types.Config{
		Storage:    types.StorageConfig{Backend: "json"},
		LogLevel:   "info",
		Currency:   DefaultCurrency,
		LedgerUnit: "RUB",
	}
}

// Load reads configPath on top of the defaults, then applies variables from
// envFile and the process environment. Missing files are not an error.
func Load(configPath, envFile string) (*types.Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *types.Config) {
	cfg.Storage.Backend = getEnv(EnvStorageBackend, cfg.Storage.Backend)
	cfg.Storage.Path = getEnv(EnvStoragePath, cfg.Storage.Path)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.Currency = getEnv(EnvCurrency, cfg.Currency)
}

func Dump(configPath string, config *types.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	return nil
}
