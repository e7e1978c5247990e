package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// videoOnlyFilter restricts the results page to videos.
const videoOnlyFilter = "EgIQAQ%253D%253D"

var initialDataPattern = regexp.MustCompile(`(?s)ytInitialData\s*=\s*(\{.*?\});\s*</script>`)

// HTML scrapes the site's search results page.
type HTML struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

// NewHTML builds an HTML searcher with a request timeout.
func NewHTML(baseURL, userAgent string, timeout time.Duration) *HTML {
	return &HTML{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: timeout},
	}
}

// ResultsURL returns the results page address for query.
func (h *HTML) ResultsURL(query string) string {
	return strings.TrimRight(h.BaseURL, "/") + "/results?search_query=" + url.QueryEscape(query) + "&sp=" + videoOnlyFilter
}

// Search fetches the results page and extracts watch links in page order.
// max is ignored; one results page is always read in full.
func (h *HTML) Search(ctx context.Context, query string, _ int) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.ResultsURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("search request: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	return ParseResultsPage(string(body))
}

// ParseResultsPage extracts candidates from a results page. Anchors pointing
// at "/watch?" are used when present; otherwise videoRenderer entries from
// the ytInitialData script are read. The whole page is returned because
// thumbnails and titles repeat each link; the resolver filters duplicates.
func ParseResultsPage(page string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var candidates []Candidate
	doc.Find(`a[href^="/watch?"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		candidates = append(candidates, Candidate{Label: sel.Text(), Link: href})
	})
	if len(candidates) > 0 {
		return candidates, nil
	}

	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !strings.Contains(text, "ytInitialData") {
			return true
		}
		found, perr := parseInitialData("<script>" + text + "</script>")
		if perr != nil {
			err = perr
			return false
		}
		candidates = found
		return false
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func parseInitialData(script string) ([]Candidate, error) {
	match := initialDataPattern.FindStringSubmatch(script)
	if match == nil {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(match[1]), &data); err != nil {
		return nil, fmt.Errorf("decode ytInitialData: %w", err)
	}
	var out []Candidate
	collectVideoRenderers(data, &out)
	return out, nil
}

func collectVideoRenderers(node any, out *[]Candidate) {
	switch v := node.(type) {
	case map[string]any:
		if renderer, ok := v["videoRenderer"].(map[string]any); ok {
			if c, ok := rendererCandidate(renderer); ok {
				*out = append(*out, c)
			}
		}
		// Sorted keys keep primary results ahead of secondary panels.
		for _, key := range slices.Sorted(maps.Keys(v)) {
			if key == "videoRenderer" {
				continue
			}
			collectVideoRenderers(v[key], out)
		}
	case []any:
		for _, child := range v {
			collectVideoRenderers(child, out)
		}
	}
}

func rendererCandidate(renderer map[string]any) (Candidate, bool) {
	id, _ := renderer["videoId"].(string)
	if id == "" {
		return Candidate{}, false
	}
	var label string
	if title, ok := renderer["title"].(map[string]any); ok {
		if runs, ok := title["runs"].([]any); ok {
			var b strings.Builder
			for _, run := range runs {
				if m, ok := run.(map[string]any); ok {
					if text, ok := m["text"].(string); ok {
						b.WriteString(text)
					}
				}
			}
			label = b.String()
		}
		if label == "" {
			label, _ = title["simpleText"].(string)
		}
	}
	return Candidate{Label: label, Link: "/watch?v=" + id}, true
}
