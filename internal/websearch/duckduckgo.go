// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch answers study questions from a public search
// engine's HTML result page. No API key is required; results come from
// parsing the page's structural markup. Request-level failures never
// surface as errors: a failed search is an empty result set.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pdiddy/study-engine/internal/httputil"
	"github.com/pdiddy/study-engine/pkg/types"
)

// duckduckgoBase is the HTML search endpoint. Package-level var for
// test substitution.
var duckduckgoBase = "https://duckduckgo.com/html/"

// browserUserAgent is sent with every search and scrape request. The
// HTML endpoint serves a captcha to clients that look like bots.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxResults = 3
	// MaxResults caps how many hits a single search may return.
	MaxResults = 5
)

// Client searches DuckDuckGo and compiles answers from the hits.
type Client struct {
	http       *http.Client
	maxResults int
	logger     *zap.Logger
}

// NewClient builds a search client. Zero-value config fields get the
// defaults: 10-second timeout, a desktop browser user agent, and 3
// results per answer.
func NewClient(cfg types.SearchConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = browserUserAgent
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Client{
		http:       httputil.NewClient(timeout, ua),
		maxResults: maxResults,
		logger:     logger,
	}
}

// Search runs one query and returns up to limit hits in page order. A
// non-positive limit uses the configured default; limits above
// MaxResults are clamped. Any request failure yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []types.SearchHit {
	if limit <= 0 {
		limit = c.maxResults
	}
	if limit > MaxResults {
		limit = MaxResults
	}

	reqURL := fmt.Sprintf("%s?q=%s", duckduckgoBase, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("building search request", zap.Error(err))
		return []types.SearchHit{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("search request failed", zap.Error(err))
		return []types.SearchHit{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("search returned non-OK status", zap.Int("status", resp.StatusCode))
		return []types.SearchHit{}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		c.logger.Error("parsing search page", zap.Error(err))
		return []types.SearchHit{}
	}

	hits := parseResults(doc, limit)
	c.logger.Info("search complete", zap.String("query", query), zap.Int("hits", len(hits)))
	return hits
}

// parseResults walks the page and extracts up to limit result blocks.
// A block missing its title or snippet anchor is skipped.
func parseResults(doc *html.Node, limit int) []types.SearchHit {
	hits := []types.SearchHit{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(hits) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "result") {
			if hit, ok := parseResultBlock(n); ok {
				hits = append(hits, hit)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hits
}

// parseResultBlock pulls title, URL, and snippet out of one result div.
func parseResultBlock(div *html.Node) (types.SearchHit, bool) {
	titleAnchor := findAnchor(div, "result__url")
	snippetAnchor := findAnchor(div, "result__snippet")
	if titleAnchor == nil || snippetAnchor == nil {
		return types.SearchHit{}, false
	}
	return types.SearchHit{
		Title:   nodeText(titleAnchor),
		URL:     attr(titleAnchor, "href"),
		Snippet: nodeText(snippetAnchor),
	}, true
}

// findAnchor returns the first descendant <a> carrying class.
func findAnchor(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, class) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findAnchor(child, class); found != nil {
			return found
		}
	}
	return nil
}

// hasClass reports whether class appears as one of n's class words.
func hasClass(n *html.Node, class string) bool {
	for _, word := range strings.Fields(attr(n, "class")) {
		if word == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates all text descendants and trims the result.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
