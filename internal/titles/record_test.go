package titles

import "testing"

const sep = " -> "

func TestParseLineShapes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
	}{
		{"bare title", "Song A", Record{Title: "Song A"}},
		{"resolved", "Song A -> https://example.test/watch?v=x", Record{Title: "Song A", Link: "https://example.test/watch?v=x"}},
		{"disabled bare", "-Song B", Record{Title: "Song B", Disabled: true}},
		{"disabled resolved", "-Song B -> /watch?v=y", Record{Title: "Song B", Link: "/watch?v=y", Disabled: true}},
		{"crlf", "Song C\r", Record{Title: "Song C"}},
		{"blank", "", Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line, sep)
			if got.Title != tt.want.Title || got.Link != tt.want.Link || got.Disabled != tt.want.Disabled {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLineRoundTrip(t *testing.T) {
	lines := []string{
		"Song A",
		"Song A -> https://example.test/watch?v=x",
		"-Song B",
		"-Song B -> https://example.test/watch?v=y",
	}
	for _, line := range lines {
		if got := Parse(line, sep).Line(sep); got != line {
			t.Errorf("round trip of %q produced %q", line, got)
		}
	}
}

func TestDisabledLineWrittenVerbatim(t *testing.T) {
	odd := "-  Spaced   Title ->   https://example.test/watch?v=z  "
	rec := Parse(odd, sep)
	if !rec.Disabled {
		t.Fatal("expected disabled record")
	}
	if got := rec.Line(sep); got != odd {
		t.Fatalf("disabled line changed: got %q want %q", got, odd)
	}
}

func TestResolvedAndDisabledRendering(t *testing.T) {
	rec := Parse("Song A", sep)
	rec.Link = "https://example.test/watch?x"
	if got := rec.Line(sep); got != "Song A -> https://example.test/watch?x" {
		t.Fatalf("unexpected resolved line %q", got)
	}
	rec.Disabled = true
	if got := rec.Line(sep); got != "-Song A -> https://example.test/watch?x" {
		t.Fatalf("unexpected disabled line %q", got)
	}
}

func TestEnabledLinkKeptAsWritten(t *testing.T) {
	line := "Song A ->  https://example.test/watch?v=x  "
	rec := Parse(line, sep)
	if rec.URL() != "https://example.test/watch?v=x" {
		t.Fatalf("unexpected URL %q", rec.URL())
	}
	if !rec.HasLink() {
		t.Fatal("expected link")
	}
	if got := rec.Line(sep); got != line {
		t.Fatalf("enabled line changed: got %q want %q", got, line)
	}

	blank := Parse("Song B ->  ", sep)
	if blank.HasLink() {
		t.Fatal("whitespace-only link must not count as resolved")
	}
}

func TestTitleContainingSeparatorSplitsOnFirst(t *testing.T) {
	rec := Parse("A -> B -> https://example.test/watch?v=1", sep)
	if rec.Title != "A" {
		t.Fatalf("expected title cut at first separator, got %q", rec.Title)
	}
	if rec.Link != "B -> https://example.test/watch?v=1" {
		t.Fatalf("unexpected link %q", rec.Link)
	}
}

func TestContains(t *testing.T) {
	records := ParseAll([]string{"Song A -> /watch?v=1", "-Song B", "Song C"}, sep)
	for _, title := range []string{"Song A", " Song B ", "Song C"} {
		if !Contains(records, title) {
			t.Errorf("expected %q to be found", title)
		}
	}
	if Contains(records, "Song D") {
		t.Error("did not expect Song D")
	}
}

func TestFormatPreservesOrder(t *testing.T) {
	lines := []string{"b", "", "-a", "c -> /watch?v=1"}
	got := Format(ParseAll(lines, sep), sep)
	if len(got) != len(lines) {
		t.Fatalf("expected %d lines, got %d", len(lines), len(got))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Errorf("line %d: got %q want %q", i, got[i], lines[i])
		}
	}
}
