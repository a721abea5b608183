// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Extract readable text from a web page",
	Long: `Scrape fetches a page, strips scripts and styles, and prints its visible
text with whitespace normalized. Useful for pulling source material
behind a search hit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLength, _ := cmd.Flags().GetInt("max-length")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := buildConfig()
		_, web := buildResolver(cfg, buildLogger(verbose))

		text := web.ScrapeContent(cmd.Context(), args[0], maxLength)
		if text == "" {
			return fmt.Errorf("no content extracted from %s", args[0])
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().Int("max-length", 2000, "maximum characters of extracted text")

	rootCmd.AddCommand(scrapeCmd)
}
