package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"songfetch/internal/search"
)

var chooserOptions = []search.Candidate{
	{Label: "Song A (Official)", Link: "https://example.com/a"},
	{Label: "Song A (Live)", Link: "https://example.com/b"},
}

func TestTerminalChooserPromptReadsNumber(t *testing.T) {
	var out bytes.Buffer
	chooser := newTerminalChooser(strings.NewReader("2\n1\n"), &out)

	idx, err := chooser.Choose(context.Background(), "Song A", chooserOptions)
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "1) Song A (Official)") {
		t.Fatalf("expected numbered options, got %q", out.String())
	}

	idx, err = chooser.Choose(context.Background(), "Song A", chooserOptions)
	if err != nil || idx != 0 {
		t.Fatalf("second prompt should reuse the reader: idx=%d err=%v", idx, err)
	}
}

func TestTerminalChooserDefaultsOnEmptyInput(t *testing.T) {
	chooser := newTerminalChooser(strings.NewReader(""), &bytes.Buffer{})
	idx, err := chooser.Choose(context.Background(), "Song A", chooserOptions)
	if err != nil || idx != 0 {
		t.Fatalf("expected first candidate at EOF, got idx=%d err=%v", idx, err)
	}
}

func TestTerminalChooserRejectsText(t *testing.T) {
	chooser := newTerminalChooser(strings.NewReader("second\n"), &bytes.Buffer{})
	if _, err := chooser.Choose(context.Background(), "Song A", chooserOptions); err == nil {
		t.Fatal("expected error for non-numeric choice")
	}
}

func TestTerminalChooserHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chooser := newTerminalChooser(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := chooser.Choose(ctx, "Song A", chooserOptions); err == nil {
		t.Fatal("expected cancellation error")
	}
}
