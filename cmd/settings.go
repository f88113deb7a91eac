package cmd

import (
	"context"
	"fmt"

	"github.com/maplebrook/homeledger/internal/client"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change user settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		settings, err := c.ListSettings(context.Background())
		if err != nil {
			return err
		}
		for _, s := range settings {
			fmt.Printf("%-20s %s\n", s.Key, s.Value)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		s, err := c.PutSetting(context.Background(), ledger.SettingKey(args[0]), args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", s.Key, s.Value)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
