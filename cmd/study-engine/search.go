// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/study-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Answer a question from web search only",
	Long: `Search queries the web directly, bypassing the generative model and the
knowledge base, and compiles the top hits into one formatted answer.
With --hits the raw result list is printed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		asJSON, _ := cmd.Flags().GetBool("json")
		rawHits, _ := cmd.Flags().GetBool("hits")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := buildConfig()
		cfg.Search.MaxResults = maxResults
		_, web := buildResolver(cfg, buildLogger(verbose))

		query := strings.Join(args, " ")

		if rawHits {
			hits := web.Search(cmd.Context(), query, maxResults)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(hits)
			}
			for i, hit := range hits {
				fmt.Printf("%d. %s\n   %s\n   %s\n", i+1, hit.Title, hit.URL, hit.Snippet)
			}
			return nil
		}

		result := web.SearchAndAnswer(cmd.Context(), query, types.ParseMode(mode))
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Println(result.Answer)
		fmt.Fprintf(os.Stderr, "confidence: %.1f\n", result.Confidence)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("mode", "exam", "answer style: exam, cheatsheet, or descriptive")
	searchCmd.Flags().Int("max-results", 3, "maximum number of results (capped at 5)")
	searchCmd.Flags().Bool("hits", false, "print the raw hit list instead of a compiled answer")
	searchCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(searchCmd)
}
