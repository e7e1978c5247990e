package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const anchorPage = `<html><body>
<a href="/watch?v=a1" class="thumb">
</a>
<a href="/watch?v=a1" title="Song A">Song A (Official Audio)</a>
<a href="/channel/xyz">Channel</a>
<a href="/watch?v=b2">Song A - Live</a>
</body></html>`

const scriptPage = `<html><head></head><body>
<script nonce="n">var ytInitialData = {"contents":{"twoColumnSearchResultsRenderer":{"primaryContents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[
{"videoRenderer":{"videoId":"v1","title":{"runs":[{"text":"Song B "},{"text":"(Lyrics)"}]}}},
{"adSlotRenderer":{}},
{"videoRenderer":{"videoId":"v2","title":{"simpleText":"Song B cover"}}}
]}}]}}}}};</script>
</body></html>`

func TestParseResultsPageAnchors(t *testing.T) {
	got, err := ParseResultsPage(anchorPage)
	if err != nil {
		t.Fatalf("ParseResultsPage: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 watch anchors, got %d (%+v)", len(got), got)
	}
	if got[0].Link != "/watch?v=a1" || !strings.HasPrefix(got[0].Label, "\n") {
		t.Fatalf("expected thumbnail anchor first with raw newline label, got %+v", got[0])
	}
	if got[1].Label != "Song A (Official Audio)" {
		t.Fatalf("unexpected label %q", got[1].Label)
	}
	if got[2].Link != "/watch?v=b2" {
		t.Fatalf("unexpected link %q", got[2].Link)
	}
}

func TestParseResultsPageInitialData(t *testing.T) {
	got, err := ParseResultsPage(scriptPage)
	if err != nil {
		t.Fatalf("ParseResultsPage: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 renderers, got %+v", got)
	}
	if got[0].Label != "Song B (Lyrics)" || got[0].Link != "/watch?v=v1" {
		t.Fatalf("unexpected first candidate %+v", got[0])
	}
	if got[1].Label != "Song B cover" || got[1].Link != "/watch?v=v2" {
		t.Fatalf("unexpected second candidate %+v", got[1])
	}
}

func TestParseResultsPageEmpty(t *testing.T) {
	got, err := ParseResultsPage("<html><body>nothing here</body></html>")
	if err != nil {
		t.Fatalf("ParseResultsPage: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %+v", got)
	}
}

func TestHTMLSearchQueriesResultsPage(t *testing.T) {
	var gotQuery, gotFilter, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("search_query")
		gotFilter = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(anchorPage))
	}))
	defer srv.Close()

	h := NewHTML(srv.URL+"/", "songfetch-test", 5*time.Second)
	got, err := h.Search(context.Background(), "Song A & B", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected full page of candidates, got %d", len(got))
	}
	if gotQuery != "Song A & B" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if !strings.Contains(gotFilter, "sp=EgIQAQ%253D%253D") {
		t.Fatalf("expected video filter in %q", gotFilter)
	}
	if gotAgent != "songfetch-test" {
		t.Fatalf("unexpected user agent %q", gotAgent)
	}
}

func TestHTMLSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTML(srv.URL, "", time.Second).Search(context.Background(), "x", 1)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}
