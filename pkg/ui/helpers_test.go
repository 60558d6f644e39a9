package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Ann", 10, "Ann"},
		{"Alexandria", 5, "Alex…"},
		{"漢字テスト", 5, "漢字…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}

func TestCompletionSuffix(t *testing.T) {
	tests := []struct{ name, search, want string }{
		{"Ann", "an", "n"},
		{"Andy", "AND", "y"},
		{"Bo", "bo", ""},
		{"Zoë", "z", "oë"},
	}
	for _, tt := range tests {
		if got := completionSuffix(tt.name, tt.search); got != tt.want {
			t.Errorf("completionSuffix(%q, %q) = %q, want %q", tt.name, tt.search, got, tt.want)
		}
	}
}
