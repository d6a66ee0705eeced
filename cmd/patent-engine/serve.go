// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-engine/internal/api"
	"github.com/pdiddy/patent-engine/internal/index"
	"github.com/pdiddy/patent-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Serve exposes search, field search, stats, setup, and health endpoints
over HTTP as a thin adapter on the index. Searches run concurrently; index
rebuilds triggered through setup block queries only for the duration of
their exclusive transaction.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = ":8080"
	}

	limit, _ := cmd.Flags().GetInt("limit")
	candidates, _ := cmd.Flags().GetInt("candidates")

	searchCfg := types.SearchConfig{MaxResults: limit, CandidateLimit: candidates}
	serverCfg := types.ServerConfig{
		Addr:         addr,
		AllowOrigins: viper.GetStringSlice("server.allow_origins"),
	}

	server := api.NewServer(store, searchCfg, serverCfg)
	fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
	return http.ListenAndServe(addr, server.Router())
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Int("limit", 10, "default result limit for API searches")
	serveCmd.Flags().Int("candidates", 0, "candidate cap before re-ranking (0 = same as limit)")

	rootCmd.AddCommand(serveCmd)
}
