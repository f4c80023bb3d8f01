/*
Copyright © 2024 goodnight authors
*/
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goodnight/goodnight/cmd/bill"
	"github.com/goodnight/goodnight/cmd/check"
	"github.com/goodnight/goodnight/cmd/cmdutil"
	"github.com/goodnight/goodnight/cmd/config"
	"github.com/goodnight/goodnight/cmd/dump"
	"github.com/goodnight/goodnight/cmd/item"
	"github.com/goodnight/goodnight/cmd/migrate"
	"github.com/goodnight/goodnight/cmd/split"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goodnight",
	Short: "Split shared bills between friends",
	Long: `goodnight keeps a list of bills in a local JSON file (or SQLite database).
Each bill holds items with a price and the person who owes it.

  goodnight bill create Dinner
  goodnight item add --bill <id> --title Pizza --price 450 --person Alex
  goodnight split <id>`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cmdutil.AddPersistentFlags(rootCmd)
	logrus.SetLevel(logrus.InfoLevel)

	rootCmd.AddCommand(bill.BillCmd)
	rootCmd.AddCommand(item.ItemCmd)
	rootCmd.AddCommand(split.SplitCmd)
	rootCmd.AddCommand(dump.DumpCmd)
	rootCmd.AddCommand(migrate.MigrateCmd)
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(config.ConfigCmd)
}
