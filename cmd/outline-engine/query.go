// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/index"
	"github.com/pdiddy/outline-engine/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search the section index",
	Long: `Query searches the section index with FTS5 full-text search over
headings and bodies, optionally filtered by heading level or document.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("level")
	docID, _ := cmd.Flags().GetString("document")
	limit, _ := cmd.Flags().GetInt("max-results")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	opts := index.QueryOptions{
		Query:      strings.Join(args, " "),
		Level:      types.HeadingLevel(level),
		DocumentID: docID,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --level, or --document")
	}

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-5s  %-50s  %-25s  %s\n",
		"Rank", "Level", "Heading", "Document", "Page")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))
	for i, r := range results {
		heading := r.Heading
		if len(heading) > 50 {
			heading = heading[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-5s  %-50s  %-25s  %d\n",
			i+1, r.Level, heading, r.DocumentID, r.Page)
	}
	return nil
}

func init() {
	queryCmd.Flags().String("index-dir", "index", "directory containing outline.db")
	queryCmd.Flags().String("level", "", "filter by heading level: H1, H2, or H3")
	queryCmd.Flags().String("document", "", "filter by document ID")
	queryCmd.Flags().Int("max-results", 0, "maximum results (0 = store default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}
