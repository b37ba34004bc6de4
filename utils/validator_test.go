package utils

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain name", "plain name"},
		{"<script>alert(1)</script>hi", "hi"},
		{"<b>bold</b> name", "bold name"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
