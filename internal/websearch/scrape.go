// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// defaultScrapeLen bounds how much page text ScrapeContent returns.
const defaultScrapeLen = 2000

// ScrapeContent fetches pageURL and returns its visible text, with
// script and style content stripped and runs of whitespace collapsed to
// single spaces, truncated to maxLength characters. A non-positive
// maxLength uses the default. Any failure returns an empty string.
func (c *Client) ScrapeContent(ctx context.Context, pageURL string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = defaultScrapeLen
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		c.logger.Warn("building scrape request", zap.String("url", pageURL), zap.Error(err))
		return ""
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("scrape request failed", zap.String("url", pageURL), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("scrape returned non-OK status",
			zap.String("url", pageURL), zap.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		c.logger.Warn("parsing scraped page", zap.String("url", pageURL), zap.Error(err))
		return ""
	}

	return truncate(visibleText(doc), maxLength)
}

// visibleText collects text nodes outside script and style elements and
// normalizes all whitespace to single spaces.
func visibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}
