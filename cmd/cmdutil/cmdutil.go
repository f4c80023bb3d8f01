// Package cmdutil builds the per-invocation environment shared by commands:
// the merged configuration and an open bill store.
package cmdutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/pkg/billstore"
	"github.com/goodnight/goodnight/pkg/config"
	"github.com/goodnight/goodnight/pkg/persistence"
	"github.com/goodnight/goodnight/pkg/types"
)

const (
	FlagConfig   = "config"
	FlagEnvFile  = "env-file"
	FlagBackend  = "backend"
	FlagStore    = "store"
	FlagLogLevel = "log-level"
)

type Env struct {
	Config *types.Config
	Store  persistence.Store
	Bills  *billstore.BillStore
}

func (e *Env) Close() error {
	return e.Store.Close()
}

// AddPersistentFlags registers the flags every command understands.
func AddPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(FlagConfig, persistence.DefaultConfigPath, "config file")
	flags.String(FlagEnvFile, config.DefaultEnvFile, "dotenv file with GOODNIGHT_* variables")
	flags.String(FlagBackend, "", "storage backend (json or sqlite)")
	flags.String(FlagStore, "", "storage file path (defaults based on backend)")
	flags.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
}

// LoadConfig merges the config file, the environment and explicitly set
// flags, in increasing priority, and applies the resulting log level.
func LoadConfig(cmd *cobra.Command) (*types.Config, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(FlagConfig)
	envFile, _ := flags.GetString(FlagEnvFile)

	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, err
	}

	if flags.Changed(FlagBackend) {
		cfg.Storage.Backend, _ = flags.GetString(FlagBackend)
	}
	if flags.Changed(FlagStore) {
		cfg.Storage.Path, _ = flags.GetString(FlagStore)
	}
	if flags.Changed(FlagLogLevel) {
		cfg.LogLevel, _ = flags.GetString(FlagLogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		logrus.SetLevel(level)
	}

	return cfg, nil
}

// Open loads the configuration and opens the configured store. Callers
// must Close the returned Env.
func Open(cmd *cobra.Command) (*Env, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	store, err := persistence.NewStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"backend": cfg.Storage.Backend,
		"path":    store.Path(),
	})

	return &Env{
		Config: cfg,
		Store:  store,
		Bills:  billstore.New(store, billstore.WithLogger(log)),
	}, nil
}
