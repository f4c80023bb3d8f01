package item

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/bill"
	"github.com/goodnight/goodnight/cmd/cmdutil"
)

var (
	billID *string
	title  *string
	price  *string
	person *string
)

// ItemCmd groups the item subcommands.
var ItemCmd = &cobra.Command{
	Use:   "item",
	Short: "manage the items of a bill",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "add an item to a bill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if strings.TrimSpace(*title) == "" || strings.TrimSpace(*price) == "" || strings.TrimSpace(*person) == "" {
			return fmt.Errorf("title, price and person must not be empty")
		}

		env, err := cmdutil.Open(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Bills.AddItem(*billID, *title, *price, *person); err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		b, ok := env.Bills.FindByID(*billID)
		if ok {
			bill.PrintBill(cmd, b, env.Config.Currency)
		}
		return nil
	},
}

func init() {
	billID = addCmd.Flags().String("bill", "", "id of the bill")
	_ = addCmd.MarkFlagRequired("bill")

	title = addCmd.Flags().String("title", "", "item title")
	price = addCmd.Flags().String("price", "", "item price")
	person = addCmd.Flags().String("person", "", "person the item is attributed to")

	ItemCmd.AddCommand(addCmd)
}
