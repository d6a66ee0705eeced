// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-engine/internal/index"
	"github.com/pdiddy/patent-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [records.json]",
	Short: "Rebuild the search index from a records JSON file",
	Long: `Index reads a JSON array of patent records and rebuilds the search
database wholesale: all prior records and index entries are deleted and the
new records inserted in a single transaction. Concurrent queries never see
a partially rebuilt index.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	recordsFile := "data/processed/patents.json"
	if len(args) > 0 {
		recordsFile = args[0]
	}

	data, err := os.ReadFile(recordsFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", recordsFile, err)
	}

	var records []types.PatentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing %s: %w", recordsFile, err)
	}

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Rebuild(context.Background(), records); err != nil {
		return err
	}
	fmt.Printf("indexed %d records\n", len(records))
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
