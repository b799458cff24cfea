package ui2d

import "testing"

func TestFoldText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Frame: 42", "Frame: 42"},
		{"café.obj", "cafe.obj"},
		{"Ångström", "Angstrom"},
		{"日本.obj", "??.obj"},
		{"tab\there", "tab?here"},
		{"two\nlines", "two\nlines"},
	}

	for _, tt := range tests {
		if got := FoldText(tt.in); got != tt.want {
			t.Errorf("FoldText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
