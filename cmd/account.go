package cmd

import (
	"context"
	"fmt"

	"github.com/maplebrook/homeledger/internal/client"
	"github.com/maplebrook/homeledger/internal/ledger"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the chart of accounts",
}

var (
	acctListTypes   string
	acctListActive  bool
	acctListManaged bool
)

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		var userManaged *bool
		if acctListManaged {
			v := true
			userManaged = &v
		}
		accounts, err := c.ListAccounts(context.Background(), acctListTypes, acctListActive, userManaged)
		if err != nil {
			return err
		}

		if len(accounts) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		fmt.Printf("%-12s %-30s %-8s %-4s %-7s %s\n", "CODE", "NAME", "TYPE", "P&L", "ACTIVE", "MANAGED")
		fmt.Printf("%-12s %-30s %-8s %-4s %-7s %s\n", "----", "----", "----", "---", "------", "-------")
		for _, a := range accounts {
			name := a.Name
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			fmt.Printf("%-12s %-30s %-8s %-4v %-7v %v\n", a.Code, name, a.Type, a.IsPL, a.IsActive, a.IsUserManaged)
		}
		return nil
	},
}

var (
	acctCreateName   string
	acctCreateType   string
	acctCreateActive bool
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user-managed asset or liability account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		created, err := c.CreateAccount(context.Background(), acctCreateName, ledger.AccountType(acctCreateType), acctCreateActive)
		if err != nil {
			return err
		}

		fmt.Printf("Account created: %s (%s) %s\n", created.Code, created.Name, created.Type)
		return nil
	},
}

var (
	acctUpdateName   string
	acctUpdateActive bool
)

var accountUpdateCmd = &cobra.Command{
	Use:   "update [code]",
	Short: "Rename or toggle a user-managed account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		updated, err := c.UpdateAccount(context.Background(), args[0], acctUpdateName, acctUpdateActive)
		if err != nil {
			return err
		}

		fmt.Printf("Account updated: %s (%s) active=%v\n", updated.Code, updated.Name, updated.IsActive)
		return nil
	},
}

var accountTransactionsCmd = &cobra.Command{
	Use:   "transactions [code]",
	Short: "List all lines posted to an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		rows, err := c.AccountTransactions(context.Background(), args[0])
		if err != nil {
			return err
		}
		printJournal(rows)
		return nil
	},
}

func init() {
	accountListCmd.Flags().StringVar(&acctListTypes, "type", "", "Filter by type, comma separated (ASSET,LIAB,EQUITY,INCOME,EXPENSE)")
	accountListCmd.Flags().BoolVar(&acctListActive, "active", false, "Active accounts only")
	accountListCmd.Flags().BoolVar(&acctListManaged, "user-managed", false, "User-managed accounts only")

	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Account type (ASSET or LIAB)")
	accountCreateCmd.Flags().BoolVar(&acctCreateActive, "active", true, "Whether the account starts active")
	accountCreateCmd.MarkFlagRequired("name")
	accountCreateCmd.MarkFlagRequired("type")

	accountUpdateCmd.Flags().StringVar(&acctUpdateName, "name", "", "New account name")
	accountUpdateCmd.Flags().BoolVar(&acctUpdateActive, "active", true, "Whether the account is active")
	accountUpdateCmd.MarkFlagRequired("name")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountTransactionsCmd)

	rootCmd.AddCommand(accountCmd)
}
