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

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show grouped counts over the indexed corpus",
	Long: `Stats reports a point-in-time snapshot over the stored records: the top
assignees, the category distribution, the most frequent IPC classes, a
per-year histogram of publication dates, and the total record count.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := store.ExportStats(context.Background(), exportPath); err != nil {
			return err
		}
		fmt.Printf("wrote stats to %s\n", exportPath)
		return nil
	}

	aggs, err := store.Aggregate(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(aggs)
	}

	fmt.Printf("Total patents: %d\n\n", aggs.TotalPatents)
	printCounts("Top assignees", aggs.TopAssignees)
	printCounts("Categories", aggs.Categories)
	printCounts("IPC classes", aggs.IPCClasses)
	printCounts("By year", aggs.ByYear)
	return nil
}

func printCounts(heading string, counts []types.FieldCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("%s:\n", heading)
	for _, fc := range counts {
		fmt.Printf("  %-40s %6d\n", fc.Value, fc.Count)
	}
	fmt.Println()
}

func init() {
	statsCmd.Flags().Bool("json", false, "output as JSON")
	statsCmd.Flags().String("export", "", "write stats to a YAML file instead of stdout")

	rootCmd.AddCommand(statsCmd)
}
