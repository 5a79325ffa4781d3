package testutil

import "testing"

func TestMaskRelTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"   1  Groceries  2 hours ago", "   1  Groceries  <time>"},
		{"Updated 1 minute from now", "Updated <time>"},
		{"Updated now", "Updated <time>"},
		{"a long while ago", "<time>"},
		{"Snowfall notes", "Snowfall notes"},
	}

	for _, tt := range tests {
		if got := MaskRelTime(tt.in); got != tt.want {
			t.Errorf("MaskRelTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstDiff(t *testing.T) {
	if _, _, _, differ := firstDiff("a\nb\n", "a\nb\n"); differ {
		t.Error("equal input should not differ")
	}

	line, w, g, differ := firstDiff("a\nb \n", "a\nb\n")
	if !differ || line != 2 || w != "b " || g != "b" {
		t.Errorf("got line %d want %q got %q", line, w, g)
	}

	line, w, g, _ = firstDiff("a\n", "a\nextra\n")
	if line != 2 || w != "" || g != "extra" {
		t.Errorf("got line %d want %q got %q", line, w, g)
	}
}
