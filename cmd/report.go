package cmd

import (
	"context"
	"fmt"

	"github.com/maplebrook/homeledger/internal/client"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/maplebrook/homeledger/internal/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reporting views over the journal",
}

var reportExpensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List all expense lines, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		rows, err := c.ExpenseList(context.Background())
		if err != nil {
			return err
		}
		printJournal(rows)
		return nil
	},
}

var reportBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance-sheet snapshot of asset and liability accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		rows, err := c.BalanceSheet(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%-6s %-12s %-30s %14s\n", "TYPE", "CODE", "NAME", "BALANCE")
		fmt.Printf("%-6s %-12s %-30s %14s\n", "----", "----", "----", "-------")
		var net float64
		for _, r := range rows {
			name := r.AccountName
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			fmt.Printf("%-6s %-12s %-30s %14.2f\n", r.AccountType, r.AccountCode, name, r.BalanceDomestic)
			if r.AccountType == ledger.TypeAsset {
				net += r.BalanceDomestic
			} else {
				net -= r.BalanceDomestic
			}
		}
		fmt.Printf("%54s %14.2f\n", "NET", net)
		return nil
	},
}

var (
	trendMonthly bool
	trendFrom    string
	trendTo      string
)

func trendGranularity() store.TrendGranularity {
	if trendMonthly {
		return store.TrendMonthly
	}
	return store.TrendDaily
}

var reportExpenseTrendCmd = &cobra.Command{
	Use:   "expense-trend",
	Short: "Expense totals per period and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		rows, err := c.ExpenseTrend(context.Background(), trendGranularity(), trendFrom, trendTo)
		if err != nil {
			return err
		}

		fmt.Printf("%-10s %-30s %14s\n", "PERIOD", "CATEGORY", "AMOUNT")
		for _, r := range rows {
			name := r.AccountName
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			fmt.Printf("%-10s %-30s %14.2f\n", r.Label, name, r.AmountDomestic)
		}
		return nil
	},
}

var reportAssetsTrendCmd = &cobra.Command{
	Use:   "assets-trend",
	Short: "Running asset/liability balances per period",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		points, err := c.AssetsTrend(context.Background(), trendGranularity(), trendFrom, trendTo)
		if err != nil {
			return err
		}

		fmt.Printf("%-10s %14s %14s %14s\n", "PERIOD", "ASSETS", "LIABILITIES", "NET")
		for _, p := range points {
			fmt.Printf("%-10s %14.2f %14.2f %14.2f\n", p.Label, p.AssetBalance, p.LiabBalance, p.NetAssets)
		}
		return nil
	},
}

func printJournal(rows []store.JournalRow) {
	if len(rows) == 0 {
		fmt.Println("No lines found.")
		return
	}
	fmt.Printf("%-12s %-20s %-30s %14s\n", "DATE", "TITLE", "ACCOUNT", "AMOUNT")
	fmt.Printf("%-12s %-20s %-30s %14s\n", "----", "-----", "-------", "------")
	for _, r := range rows {
		title := ""
		if r.EntryTitle != nil {
			title = *r.EntryTitle
		}
		if len(title) > 18 {
			title = title[:18] + ".."
		}
		name := r.AccountName
		if len(name) > 28 {
			name = name[:28] + ".."
		}
		fmt.Printf("%-12s %-20s %-30s %14.2f\n", r.AccountingDate, title, name, r.AmountDomestic)
	}
}

func init() {
	for _, c := range []*cobra.Command{reportExpenseTrendCmd, reportAssetsTrendCmd} {
		c.Flags().BoolVar(&trendMonthly, "monthly", false, "Bucket by year-month instead of day")
		c.Flags().StringVar(&trendFrom, "from", "", "Inclusive start date (YYYY-MM-DD)")
		c.Flags().StringVar(&trendTo, "to", "", "Inclusive end date (YYYY-MM-DD)")
	}

	reportCmd.AddCommand(reportExpensesCmd)
	reportCmd.AddCommand(reportBalanceCmd)
	reportCmd.AddCommand(reportExpenseTrendCmd)
	reportCmd.AddCommand(reportAssetsTrendCmd)
	rootCmd.AddCommand(reportCmd)
}
