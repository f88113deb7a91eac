package cmd

import (
	"github.com/maplebrook/homeledger/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "homeledger",
	Short: "Personal double-entry bookkeeping ledger",
	Long:  "A personal double-entry bookkeeping engine backed by SQLite: balanced journal entries, expense categories, balance-sheet and trend reports, and a JSON import pipeline for extracted receipts.",
}

func init() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{DBPath: "homeledger.db", ServerURL: "http://localhost:8791", ListenAddr: ":8791"}
	}

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", cfg.ServerURL, "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", cfg.DBPath, "SQLite database path")
}

func Execute() error {
	return rootCmd.Execute()
}
