package cmd

import (
	"context"
	"fmt"

	"github.com/maplebrook/homeledger/internal/client"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Inspect and delete journal entries",
}

var entryGetCmd = &cobra.Command{
	Use:   "get [uuid]",
	Short: "Show an entry with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		resp, err := c.GetEntry(context.Background(), args[0])
		if err != nil {
			return err
		}

		e := resp.Entry
		fmt.Printf("Entry:    %s\n", e.UUID)
		fmt.Printf("Date:     %s\n", e.AccountingDate)
		fmt.Printf("Type:     %s\n", e.Type)
		if e.Title != nil {
			fmt.Printf("Title:    %s\n", *e.Title)
		}
		if e.Text != nil {
			fmt.Printf("Note:     %s\n", *e.Text)
		}
		fmt.Printf("Modified: %s\n", e.ModificationDate)
		fmt.Println()

		fmt.Printf("%-4s %-30s %-3s %14s %s\n", "NO", "ACCOUNT", "D/C", "AMOUNT", "ORIGINAL")
		for _, ln := range resp.Lines {
			name := ln.AccountName
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			original := ""
			if ln.AmountOriginal != nil {
				original = ledger.FormatMoney(*ln.AmountOriginal, ln.CurrencyOriginal)
			}
			fmt.Printf("%-4d %-30s %-3s %14.2f %s\n", ln.LineNo, name, ln.DC, ln.AmountDomestic, original)
		}
		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete [uuid]",
	Short: "Delete an entry and all its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		if err := c.DeleteEntry(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Entry deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	entryCmd.AddCommand(entryGetCmd)
	entryCmd.AddCommand(entryDeleteCmd)
	rootCmd.AddCommand(entryCmd)
}
