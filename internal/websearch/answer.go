// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/pkg/types"
)

// SourceWeb tags every result produced by this package.
const SourceWeb = "web_search"

// cheatsheetSnippetLen is how many characters of a snippet survive in
// cheatsheet mode.
const cheatsheetSnippetLen = 150

// hitTmpl renders one search hit as an answer block. Package-level var
// for test substitution.
var hitTmpl = template.Must(template.New("hit").Parse(
	`{{if .Cheatsheet}}{{.Index}}. **{{.Title}}**
   {{.Snippet}}...
{{else}}**{{.Index}}. {{.Title}}**
{{.Snippet}}
{{end}}`))

// hitView is the template payload for one hit.
type hitView struct {
	Index      int
	Title      string
	Snippet    string
	Cheatsheet bool
}

// SearchAndAnswer searches for query and compiles the hits into one
// formatted answer. Zero hits yield a low-confidence "no results"
// answer; a compilation failure yields an even lower-confidence
// error-describing answer. Never returns an error.
func (c *Client) SearchAndAnswer(ctx context.Context, query string, m types.Mode) types.AnswerResult {
	c.logger.Info("searching web", zap.String("query", query))
	hits := c.Search(ctx, query, c.maxResults)

	if len(hits) == 0 {
		c.logger.Warn("no web results found")
		return types.AnswerResult{
			Answer:     "No web results found for your query. Please try a different search term.",
			Confidence: types.ConfidenceWebEmpty,
			Source:     SourceWeb,
			Results:    []types.SearchHit{},
		}
	}

	answer, err := compileAnswer(query, hits, m)
	if err != nil {
		c.logger.Error("compiling web answer", zap.Error(err))
		return types.AnswerResult{
			Answer:     fmt.Sprintf("Web search failed: %v", err),
			Confidence: types.ConfidenceWebError,
			Source:     SourceWeb,
			Results:    []types.SearchHit{},
		}
	}

	c.logger.Info("answer compiled from web search", zap.Int("hits", len(hits)))
	return types.AnswerResult{
		Answer:     answer,
		Confidence: types.ConfidenceWeb,
		Source:     SourceWeb,
		Results:    hits,
	}
}

// compileAnswer joins a header, one block per hit, and a read-more link
// for every hit that has a URL.
func compileAnswer(query string, hits []types.SearchHit, m types.Mode) (string, error) {
	parts := []string{fmt.Sprintf("**Web Search Results for:** %s\n\n", query)}

	for i, hit := range hits {
		view := hitView{
			Index:      i + 1,
			Title:      hit.Title,
			Snippet:    hit.Snippet,
			Cheatsheet: m == types.ModeCheatsheet,
		}
		if view.Cheatsheet {
			view.Snippet = truncate(view.Snippet, cheatsheetSnippetLen)
		}
		var sb strings.Builder
		if err := hitTmpl.Execute(&sb, view); err != nil {
			return "", err
		}
		parts = append(parts, sb.String())

		if hit.URL != "" {
			parts = append(parts, fmt.Sprintf("   [Read more](%s)\n", hit.URL))
		}
	}

	return strings.Join(parts, "\n"), nil
}

// truncate cuts s to at most n characters, counting runes so a
// multi-byte character is never split.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
