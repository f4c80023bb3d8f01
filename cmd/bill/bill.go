package bill

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/pkg/types"
)

// BillCmd groups the bill subcommands.
var BillCmd = &cobra.Command{
	Use:   "bill",
	Short: "create and browse bills",
}

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "create a new bill",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		bill, err := env.Bills.CreateBill(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("bill %q was not saved: %w", bill.Title, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created bill %s: %s\n", bill.ID, bill.Title)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list bills, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		bills := env.Bills.Load()
		out := cmd.OutOrStdout()
		if len(bills) == 0 {
			fmt.Fprintln(out, "No bills yet")
			return nil
		}

		for _, bill := range bills {
			fmt.Fprintf(out, "%s  %s\n", bill.ID, bill.Label())
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <bill-id>",
	Short: "show the items of a bill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		bill, ok := env.Bills.FindByID(args[0])
		if !ok {
			return fmt.Errorf("bill not found: %s", args[0])
		}

		PrintBill(cmd, bill, env.Config.Currency)
		return nil
	},
}

// PrintBill writes the bill title followed by one line per item.
func PrintBill(cmd *cobra.Command, bill types.Bill, currency string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bill.Title)

	if len(bill.Items) == 0 {
		fmt.Fprintln(out, "No items")
		return
	}

	for _, item := range bill.Items {
		fmt.Fprintln(out, item.Label(currency))
	}
}

func init() {
	BillCmd.AddCommand(createCmd)
	BillCmd.AddCommand(listCmd)
	BillCmd.AddCommand(showCmd)
}
