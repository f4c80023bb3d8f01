package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/pkg/config"
)

// ConfigCmd groups the config subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "inspect or create the config file",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "write a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString(cmdutil.FlagConfig)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat config file: %w", err)
		}

		cfg := config.Default()
		if err := config.Dump(path, &cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", path)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := cmdutil.LoadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	ConfigCmd.AddCommand(initCmd)
	ConfigCmd.AddCommand(showCmd)
}
