package textutil

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var tokenSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Fingerprint is a term-frequency vector of a title.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint builds a fingerprint from text. Returns nil when the text
// has no tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var sum float64
	for _, count := range counts {
		sum += count * count
	}
	return &Fingerprint{tokens: counts, norm: math.Sqrt(sum)}
}

// Tokenize splits text into lowercase letter and digit runs. Tokens shorter
// than two runes are dropped.
func Tokenize(text string) []string {
	lowered := strings.ToLower(norm.NFC.String(text))
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if len([]rune(token)) < 2 {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// CosineSimilarity compares two fingerprints. Returns 0 if either is nil.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	return dot / (a.norm * b.norm)
}

// MostSimilar returns the entry of candidates closest to title and its
// score. Entries identical to title after trimming are ignored.
func MostSimilar(title string, candidates []string) (string, float64) {
	want := strings.TrimSpace(title)
	fp := NewFingerprint(want)
	var (
		best  string
		score float64
	)
	for _, c := range candidates {
		if strings.TrimSpace(c) == want {
			continue
		}
		if s := CosineSimilarity(fp, NewFingerprint(c)); s > score {
			best, score = c, s
		}
	}
	return best, score
}
