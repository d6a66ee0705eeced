// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-engine/internal/parser"
	"github.com/pdiddy/patent-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse raw USPTO XML files into canonical patent records",
	Long: `Parse walks the input directory for XML files, splits concatenated
documents, extracts canonical fields across schema variants, and writes
accepted records as a JSON array. Malformed documents are counted and
skipped; a bad document never fails the batch.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := parserConfig(cmd)

	records, summary, err := parser.ParseDir(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(cfg.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}

	fmt.Printf("wrote %d records to %s\n", summary.Accepted, cfg.OutputFile)
	return nil
}

func parserConfig(cmd *cobra.Command) types.ParserConfig {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	outputFile, _ := cmd.Flags().GetString("output")
	maxFiles, _ := cmd.Flags().GetInt("max-files")
	maxDocs, _ := cmd.Flags().GetInt("max-docs-per-stream")
	maxRecords, _ := cmd.Flags().GetInt("max-records-per-file")

	return types.ParserConfig{
		InputDir:          inputDir,
		OutputFile:        outputFile,
		MaxFiles:          maxFiles,
		MaxDocsPerStream:  maxDocs,
		MaxRecordsPerFile: maxRecords,
	}
}

func init() {
	parseCmd.Flags().String("input-dir", "data/raw", "directory scanned recursively for *.xml files")
	parseCmd.Flags().String("output", "data/processed/patents.json", "output JSON file for accepted records")
	parseCmd.Flags().Int("max-files", 0, "maximum XML files to process (0 = unlimited)")
	parseCmd.Flags().Int("max-docs-per-stream", 0, "maximum document units per file (0 = unlimited)")
	parseCmd.Flags().Int("max-records-per-file", 0, "maximum accepted records per file (0 = unlimited)")

	rootCmd.AddCommand(parseCmd)
}
