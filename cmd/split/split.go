package split

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/pkg/split"
	"github.com/goodnight/goodnight/pkg/types"
)

// SplitCmd prints what each person owes on a bill.
var SplitCmd = &cobra.Command{
	Use:   "split <bill-id>",
	Short: "show per-person totals of a bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		b, ok := env.Bills.FindByID(args[0])
		if !ok {
			return fmt.Errorf("bill not found: %s", args[0])
		}

		summary := split.Calculate(b)
		currency := env.Config.Currency
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, summary.Title)
		for _, ps := range summary.People {
			fmt.Fprintf(out, "%s: %s%s (%d items)\n", ps.Person, types.FormatPrice(ps.Total), currency, len(ps.Items))
		}
		fmt.Fprintf(out, "Total: %s%s\n", types.FormatPrice(summary.Total), currency)
		return nil
	},
}
