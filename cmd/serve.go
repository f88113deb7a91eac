package cmd

import (
	"github.com/maplebrook/homeledger/internal/config"
	"github.com/maplebrook/homeledger/internal/server"
	"github.com/maplebrook/homeledger/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(flagDB)
		if err != nil {
			return err
		}
		defer st.Close()

		if serveSeed {
			if err := st.SeedSampleData(cmd.Context()); err != nil {
				return err
			}
		}

		srv := server.New(st, serveAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	defaultAddr := ":8791"
	if cfg, err := config.Load(); err == nil {
		defaultAddr = cfg.ListenAddr
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "Listen address")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Seed sample entries if the journal is empty")
	rootCmd.AddCommand(serveCmd)
}
