// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a study question",
	Long: `Ask answers a study question through the configured source: the
generative model, web search, the built-in knowledge base, or automatic
selection. The answer is formatted per --mode.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		source, _ := cmd.Flags().GetString("source")
		asJSON, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := buildConfig()
		warnConfig(cfg)
		resolver, _ := buildResolver(cfg, buildLogger(verbose))

		query := strings.Join(args, " ")
		result, err := resolver.Resolve(cmd.Context(), query, mode, source)
		if err != nil {
			return err
		}

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
	askCmd.Flags().String("mode", "exam", "answer style: exam, cheatsheet, or descriptive")
	askCmd.Flags().String("source", "auto", "answer source: auto, gemini, web, or local")
	askCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(askCmd)
}
