package check

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/pkg/persistence"
)

// CheckCmd reports read and schema problems the other commands skip over.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "verify that the bill store loads cleanly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		err = env.Bills.Check()

		var schemaErr *persistence.SchemaError
		switch {
		case err == nil:
			fmt.Fprintf(out, "OK: %d bill(s) in %s\n", len(env.Bills.Load()), env.Store.Path())
			return nil
		case errors.As(err, &schemaErr):
			for _, p := range schemaErr.Problems {
				fmt.Fprintln(out, p)
			}
			return fmt.Errorf("%d record(s) would be dropped or defaulted", len(schemaErr.Problems))
		default:
			return err
		}
	},
}
