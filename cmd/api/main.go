package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/watchdeck/core/cmd/api/commands"
)

// @title Watchdeck API
// @version 1.0
// @description Watchlist and tab state persistence backed by a single JSON file

// @host localhost:8080
// @BasePath /api

func main() {
	rootCmd := &cobra.Command{
		Use:   "watchdeck",
		Short: "Watchdeck API Server",
		Long:  `Watchdeck stores named watchlists of financial instruments and UI tab state in a JSON file and serves them over HTTP.`,
	}

	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "", "Config file (yaml, json or toml)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewDataCommand())
	rootCmd.AddCommand(commands.NewInstrumentsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
