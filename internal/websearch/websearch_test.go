// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"text/template"

	"github.com/pdiddy/study-engine/pkg/types"
)

const resultsPage = `<html><body>
<div class="result results_links results_links_deep web-result">
  <a class="result__url" href="https://physics.example.com/newton">physics.example.com/newton</a>
  <a class="result__snippet">Newton's laws of motion describe the relationship between forces and movement.</a>
</div>
<div class="result">
  <a class="result__url" href="https://math.example.com/quadratic">math.example.com/quadratic</a>
  <a class="result__snippet">The quadratic formula solves ax^2 + bx + c = 0.</a>
</div>
<div class="result">
  <span>malformed block with no anchors</span>
</div>
<div class="result">
  <a class="result__url" href="https://cs.example.com/bigo">cs.example.com/bigo</a>
  <a class="result__snippet">Big-O notation classifies algorithms by growth rate.</a>
</div>
</body></html>`

// newSearchServer swaps duckduckgoBase for a test server and restores
// it on cleanup.
func newSearchServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	orig := duckduckgoBase
	duckduckgoBase = srv.URL
	t.Cleanup(func() {
		duckduckgoBase = orig
		srv.Close()
	})
	return srv
}

func TestSearch(t *testing.T) {
	var gotQuery, gotUA string
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, resultsPage)
	})

	c := NewClient(types.SearchConfig{}, nil)
	hits := c.Search(context.Background(), "newton's laws", 5)

	if gotQuery != "newton's laws" {
		t.Errorf("query param = %q", gotQuery)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want a browser agent", gotUA)
	}
	// The malformed third block is skipped, not fatal.
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
	want := types.SearchHit{
		Title:   "physics.example.com/newton",
		URL:     "https://physics.example.com/newton",
		Snippet: "Newton's laws of motion describe the relationship between forces and movement.",
	}
	if hits[0] != want {
		t.Errorf("hits[0] = %+v, want %+v", hits[0], want)
	}
	if hits[2].Title != "cs.example.com/bigo" {
		t.Errorf("hits[2].Title = %q", hits[2].Title)
	}
}

func TestSearchLimit(t *testing.T) {
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	})
	c := NewClient(types.SearchConfig{}, nil)

	if hits := c.Search(context.Background(), "q", 1); len(hits) != 1 {
		t.Errorf("limit 1: got %d hits", len(hits))
	}
	// Non-positive limit falls back to the configured default (3).
	if hits := c.Search(context.Background(), "q", 0); len(hits) != 3 {
		t.Errorf("limit 0: got %d hits, want 3", len(hits))
	}
}

func TestSearchFailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"captcha page without results", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>Prove you are human</body></html>")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSearchServer(t, tt.handler)
			c := NewClient(types.SearchConfig{}, nil)
			hits := c.Search(context.Background(), "q", 3)
			if hits == nil {
				t.Fatal("hits is nil, want empty slice")
			}
			if len(hits) != 0 {
				t.Errorf("got %d hits, want 0", len(hits))
			}
		})
	}
}

func TestSearchConnectionRefusedYieldsEmpty(t *testing.T) {
	srv := newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	c := NewClient(types.SearchConfig{}, nil)
	if hits := c.Search(context.Background(), "q", 3); len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}

func TestSearchAndAnswer(t *testing.T) {
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	})

	c := NewClient(types.SearchConfig{}, nil)
	got := c.SearchAndAnswer(context.Background(), "newton's laws", types.ModeExam)

	if got.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", got.Confidence)
	}
	if got.Source != SourceWeb {
		t.Errorf("Source = %q, want %q", got.Source, SourceWeb)
	}
	if len(got.Results) != 3 {
		t.Errorf("got %d results, want 3", len(got.Results))
	}
	if !strings.Contains(got.Answer, "**Web Search Results for:** newton's laws") {
		t.Errorf("Answer missing header: %q", got.Answer)
	}
	if !strings.Contains(got.Answer, "**1. physics.example.com/newton**") {
		t.Errorf("Answer missing numbered title: %q", got.Answer)
	}
	if !strings.Contains(got.Answer, "[Read more](https://physics.example.com/newton)") {
		t.Errorf("Answer missing read-more link: %q", got.Answer)
	}
	if got.FoundInPDF || got.PDFName != nil {
		t.Error("legacy PDF fields must stay false/nil")
	}
}

func TestSearchAndAnswerCheatsheetTruncatesSnippets(t *testing.T) {
	longSnippet := strings.Repeat("x", 200)
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<div class="result">
<a class="result__url" href="https://a.example.com">a.example.com</a>
<a class="result__snippet">%s</a>
</div>`, longSnippet)
	})

	c := NewClient(types.SearchConfig{}, nil)
	got := c.SearchAndAnswer(context.Background(), "q", types.ModeCheatsheet)

	want := strings.Repeat("x", 150) + "..."
	if !strings.Contains(got.Answer, want) {
		t.Errorf("Answer missing truncated snippet: %q", got.Answer)
	}
	if strings.Contains(got.Answer, strings.Repeat("x", 151)) {
		t.Error("snippet not truncated to 150 characters")
	}
	if !strings.Contains(got.Answer, "1. **a.example.com**") {
		t.Errorf("Answer missing cheatsheet numbering: %q", got.Answer)
	}
}

func TestSearchAndAnswerNoResults(t *testing.T) {
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body></body></html>")
	})

	c := NewClient(types.SearchConfig{}, nil)
	got := c.SearchAndAnswer(context.Background(), "q", types.ModeExam)

	if got.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", got.Confidence)
	}
	if !strings.Contains(got.Answer, "No web results found") {
		t.Errorf("Answer = %q", got.Answer)
	}
	if got.Results == nil || len(got.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil slice", got.Results)
	}
}

func TestSearchAndAnswerCompileFailure(t *testing.T) {
	newSearchServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	})

	orig := hitTmpl
	hitTmpl = template.Must(template.New("broken").Parse("{{.NoSuchField}}"))
	t.Cleanup(func() { hitTmpl = orig })

	c := NewClient(types.SearchConfig{}, nil)
	got := c.SearchAndAnswer(context.Background(), "q", types.ModeExam)

	if got.Confidence != 0.2 {
		t.Errorf("Confidence = %v, want 0.2", got.Confidence)
	}
	if !strings.Contains(got.Answer, "Web search failed:") {
		t.Errorf("Answer = %q", got.Answer)
	}
	if got.Results == nil || len(got.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil slice", got.Results)
	}
}

func TestScrapeContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<script>var hidden = "not content";</script>
<style>.x { color: red }</style>
</head><body>
<h1>Newton's   Laws</h1>
<p>Three laws of
motion.</p>
</body></html>`)
	}))
	defer srv.Close()

	c := NewClient(types.SearchConfig{}, nil)
	got := c.ScrapeContent(context.Background(), srv.URL, 0)

	if !strings.Contains(got, "Newton's Laws Three laws of motion.") {
		t.Errorf("ScrapeContent = %q", got)
	}
	if strings.Contains(got, "hidden") || strings.Contains(got, "color: red") {
		t.Errorf("script/style content leaked: %q", got)
	}
}

func TestScrapeContentTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body>%s</body></html>", strings.Repeat("a", 3000))
	}))
	defer srv.Close()

	c := NewClient(types.SearchConfig{}, nil)
	if got := c.ScrapeContent(context.Background(), srv.URL, 100); len([]rune(got)) != 100 {
		t.Errorf("len = %d, want 100", len([]rune(got)))
	}
	if got := c.ScrapeContent(context.Background(), srv.URL, 0); len([]rune(got)) != 2000 {
		t.Errorf("default len = %d, want 2000", len([]rune(got)))
	}
}

func TestScrapeContentFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(types.SearchConfig{}, nil)
	if got := c.ScrapeContent(context.Background(), srv.URL, 0); got != "" {
		t.Errorf("ScrapeContent = %q, want empty", got)
	}
}
