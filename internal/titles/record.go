package titles

import "strings"

// DisabledMarker prefixes lines the pipeline must skip.
const DisabledMarker = "-"

// Record is one parsed line of the title list.
type Record struct {
	Title    string
	Link     string
	Disabled bool

	// raw is the original line of a record parsed as disabled.
	raw string
}

// Parse splits a title list line into a Record. The first occurrence of sep
// separates the title from the link; a title that itself contains sep is
// therefore cut short. The link is kept as written; use URL for the
// trimmed form.
func Parse(line, sep string) Record {
	line = strings.TrimSuffix(line, "\r")
	rec := Record{}
	body := line
	if strings.HasPrefix(line, DisabledMarker) {
		rec.Disabled = true
		rec.raw = line
		body = strings.TrimPrefix(line, DisabledMarker)
	}
	if title, link, ok := strings.Cut(body, sep); ok && sep != "" {
		rec.Title = title
		rec.Link = link
		return rec
	}
	rec.Title = body
	return rec
}

// Line renders the record in title list form. Records that were parsed as
// disabled return their original line unchanged.
func (r Record) Line(sep string) string {
	if r.Disabled && r.raw != "" {
		return r.raw
	}
	var b strings.Builder
	if r.Disabled {
		b.WriteString(DisabledMarker)
	}
	b.WriteString(r.Title)
	if r.Link != "" {
		b.WriteString(sep)
		b.WriteString(r.Link)
	}
	return b.String()
}

// HasLink reports whether the record carries a resolved link.
func (r Record) HasLink() bool {
	return r.URL() != ""
}

// URL returns the link without surrounding whitespace.
func (r Record) URL() string {
	return strings.TrimSpace(r.Link)
}

// Blank reports whether the record has no title text, as for empty lines.
func (r Record) Blank() bool {
	return strings.TrimSpace(r.Title) == ""
}

// Query returns the text used to search for the record.
func (r Record) Query() string {
	return strings.TrimSpace(r.Title)
}

// ParseAll parses every line in order.
func ParseAll(lines []string, sep string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, Parse(line, sep))
	}
	return records
}

// Format renders records back into lines in the same order.
func Format(records []Record, sep string) []string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, rec.Line(sep))
	}
	return lines
}

// Contains reports whether any record, enabled or not, has the given title.
// Matching is textual after trimming surrounding whitespace.
func Contains(records []Record, title string) bool {
	want := strings.TrimSpace(title)
	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == want {
			return true
		}
	}
	return false
}
