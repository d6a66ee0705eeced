// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-engine/internal/index"
	"github.com/pdiddy/patent-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query terms]",
	Short: "Search the patent index",
	Long: `Search answers a free-text query against the index. A single term
matches as a prefix; several terms match as a disjunction of prefixes, with
results re-ranked by weighted per-field term frequency. Filters on
category, assignee, and publication date narrow the match conjunctively.

Use --field with a value to search one field directly instead; valid
fields are assignee, category, ipc_class, and inventors.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Field mode: substring search on one allow-listed field.
	if field, _ := cmd.Flags().GetString("field"); field != "" {
		value, _ := cmd.Flags().GetString("value")
		if value == "" {
			return fmt.Errorf("--field requires --value")
		}
		records, err := store.SearchByField(context.Background(), field, value, limit)
		if err != nil {
			return err
		}
		return formatRecords(records, jsonOutput)
	}

	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query required: provide search terms or --field with --value")
	}

	opts := index.SearchOptions{Limit: limit}
	opts.CandidateLimit, _ = cmd.Flags().GetInt("candidates")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Assignee, _ = cmd.Flags().GetString("assignee")
	opts.DateFrom, _ = cmd.Flags().GetString("date-from")
	opts.DateTo, _ = cmd.Flags().GetString("date-to")

	results, err := store.Search(context.Background(), query, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, r := range results {
		title := r.Title
		if len(title) > 70 {
			title = title[:70] + "..."
		}
		fmt.Printf("%2d. %-73s  %-24s  %6.2f\n", i+1, title, r.Category, r.Score)
	}
	return nil
}

func formatRecords(records []types.PatentRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, r := range records {
		title := r.Title
		if len(title) > 70 {
			title = title[:70] + "..."
		}
		fmt.Printf("%2d. %-73s  %-30s  %s\n", i+1, title, r.Assignee, r.PublicationDate)
	}
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Int("candidates", 0, "candidate cap before re-ranking (0 = same as limit)")
	searchCmd.Flags().String("category", "", "filter by exact category")
	searchCmd.Flags().String("assignee", "", "filter by assignee substring")
	searchCmd.Flags().String("date-from", "", "publication date lower bound (YYYY-MM-DD)")
	searchCmd.Flags().String("date-to", "", "publication date upper bound (YYYY-MM-DD)")
	searchCmd.Flags().String("field", "", "search one field: assignee, category, ipc_class, inventors")
	searchCmd.Flags().String("value", "", "substring value for --field")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
