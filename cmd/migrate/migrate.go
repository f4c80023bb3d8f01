package migrate

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/pkg/persistence"
)

var (
	fromBackend string
	toBackend   string
	sourcePath  string
	destPath    string
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "migrate bills between storage backends",
	Long:  `Migrate bills from one storage backend to another (e.g. json to sqlite).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.OutOrStdout())
	},
}

func init() {
	MigrateCmd.Flags().StringVar(&fromBackend, "from", "json", "source backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&toBackend, "to", "sqlite", "destination backend (json or sqlite)")
	MigrateCmd.Flags().StringVar(&sourcePath, "source", "", "source file path (defaults based on backend)")
	MigrateCmd.Flags().StringVar(&destPath, "dest", "", "destination file path (defaults based on backend)")
}

func runMigrate(out io.Writer) error {
	if fromBackend == toBackend {
		return fmt.Errorf("source and destination backends are the same: %s", fromBackend)
	}

	src, err := persistence.NewStoreWithBackend(fromBackend, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source store: %w", err)
	}
	defer src.Close()

	dst, err := persistence.NewStoreWithBackend(toBackend, destPath)
	if err != nil {
		return fmt.Errorf("failed to open destination store: %w", err)
	}
	defer dst.Close()

	// Schema problems in the source abort the migration.
	bills, err := src.LoadBills()
	if err != nil {
		return fmt.Errorf("failed to load from source: %w", err)
	}

	if err := dst.DumpBills(bills); err != nil {
		return fmt.Errorf("failed to write to destination: %w", err)
	}

	fmt.Fprintf(out, "Successfully migrated %d bill(s) from %s to %s.\n", len(bills), fromBackend, toBackend)
	fmt.Fprintln(out, "Update your config.yaml to use the new backend:")
	fmt.Fprintln(out, "  storage:")
	fmt.Fprintf(out, "    backend: %s\n", toBackend)
	return nil
}
