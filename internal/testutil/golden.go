package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// GoldenUpdateEnv rewrites golden files instead of comparing when set.
const GoldenUpdateEnv = "GOLDEN_UPDATE"

// Normalizer rewrites output before it is compared or stored.
type Normalizer func(string) string

var relTimeRe = regexp.MustCompile(`(\d+ [a-z]+|a long while) (ago|from now)|\bnow\b`)

// MaskRelTime replaces relative timestamps ("2 hours ago", "now") with
// <time>, for output rendered against the real clock.
func MaskRelTime(s string) string {
	return relTimeRe.ReplaceAllString(s, "<time>")
}

// GoldenString compares got with testdata/<name>.golden after applying
// normalizers. Line endings are always normalized.
func GoldenString(t *testing.T, name string, got string, normalize ...Normalizer) {
	t.Helper()

	got = strings.ReplaceAll(got, "\r\n", "\n")
	for _, fn := range normalize {
		got = fn(got)
	}
	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(GoldenUpdateEnv) != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("update golden file: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden file %s: %v\nGot:\n%s", path, err, got)
	}
	want := strings.ReplaceAll(string(data), "\r\n", "\n")

	if line, w, g, ok := firstDiff(want, got); ok {
		t.Errorf("output mismatch for %s at line %d\nwant: %s\ngot:  %s\n\nGot:\n%s",
			name, line, visible(w), visible(g), got)
	}
}

// Golden is GoldenString for byte output.
func Golden(t *testing.T, name string, got []byte, normalize ...Normalizer) {
	t.Helper()
	GoldenString(t, name, string(got), normalize...)
}

// firstDiff returns the first differing line (1-based) of want and got.
func firstDiff(want, got string) (line int, w, g string, differ bool) {
	if want == got {
		return 0, "", "", false
	}
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < max(len(wl), len(gl)); i++ {
		w, g = "<EOF>", "<EOF>"
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			return i + 1, w, g, true
		}
	}
	return 0, "", "", false
}

// visible quotes a line so padding differences show up.
func visible(s string) string {
	if s == "<EOF>" {
		return s
	}
	return `"` + strings.ReplaceAll(s, "\t", `\t`) + `"`
}
