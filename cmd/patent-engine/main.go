// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-engine CLI.
// Implements: prd001-patent-parsing, prd002-search-index, prd003-query,
//             prd004-aggregations, prd005-api (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the patent-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-engine",
	Short: "Parse, index, and search USPTO patent documents",
	Long: `patent-engine ingests raw USPTO XML, normalizes it into canonical patent
records, builds a full-text search index, and answers ranked queries with
filters and corpus aggregations.

Each pipeline stage is a subcommand: parse raw XML into records, index
records into the search database, then search and stats against the index.
Serve exposes the same operations over HTTP.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./patent-engine.yaml or ~/.config/patent-engine/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "index database file (default: patent_search.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-engine"))
		}
	}

	viper.SetEnvPrefix("PATENT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// indexConfig resolves index settings from the --db flag, the config file,
// and defaults, in that order.
func indexConfig(cmd *cobra.Command) types.IndexConfig {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("index.db_path")
	}
	if dbPath == "" {
		dbPath = "patent_search.db"
	}

	busy := viper.GetDuration("index.busy_timeout")
	if busy <= 0 {
		busy = 30 * time.Second
	}

	return types.IndexConfig{DBPath: dbPath, BusyTimeout: busy}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
