package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/maplebrook/homeledger/internal/client"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <payload.json>",
	Short: "Import an extracted receipt payload as a balanced expense entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		c := client.New(flagServer)
		res, err := c.Import(context.Background(), payload)
		if err != nil {
			return err
		}

		fmt.Printf("Imported entry %s\n", res.EntryUUID)
		fmt.Printf("  date:     %s\n", res.AccountingDate)
		fmt.Printf("  currency: %s\n", res.CurrencyOriginal)
		fmt.Printf("  total:    %.2f\n", res.TotalAmountDomestic)
		fmt.Printf("  lines:    %d\n", res.LineCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
