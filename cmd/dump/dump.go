package dump

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/pkg/dump"
	"github.com/goodnight/goodnight/pkg/persistence"
)

var (
	output *string
	unit   *string
)

// DumpCmd represents the dump command
var DumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "generate beancount file from bills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ledgerUnit := env.Config.LedgerUnit
		if cmd.Flags().Changed("unit") {
			ledgerUnit = *unit
		}

		bills := env.Bills.Load()
		if err := dump.Dump(*output, bills, ledgerUnit); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated beancount file: %q.\n", *output)
		return nil
	},
}

func init() {
	output = DumpCmd.Flags().StringP("output", "o", persistence.DefaultLedgerPath, "ledger file to write")
	unit = DumpCmd.Flags().String("unit", "", "commodity for amounts (defaults to ledgerUnit from config)")
}
