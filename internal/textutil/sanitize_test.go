package textutil

import "testing"

func TestFileStem(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces", "Song A", "Song_A"},
		{"whitespace runs", "  Song \t  A  ", "Song_A"},
		{"unsafe characters", `AC/DC: Back in Black?`, "AC-DC-_Back_in_Black"},
		{"quotes and pipes", `"Live" | 1999`, "Live_1999"},
		{"nfc", "Café del Mar", "Café_del_Mar"},
		{"dots only", "...", "untitled"},
		{"empty", "   ", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileStem(tt.input); got != tt.want {
				t.Errorf("FileStem(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Movie: Part 1", "Movie- Part 1"},
		{"a/b\\c", "a-b-c"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
