package hasher

import (
	"strings"
	"testing"
)

func TestContentHash_Length(t *testing.T) {
	full := ContentHash([]byte("resize"), 0)
	if len(full) != 16 {
		t.Fatalf("full hash %q", full)
	}
	if short := ContentHash([]byte("resize"), 8); short != full[:8] {
		t.Errorf("truncated %q, want prefix of %q", short, full)
	}
	if ContentHash([]byte("resize"), 99) != full {
		t.Error("oversized length should return the full hash")
	}
}

func TestContentHashReader_MatchesBytes(t *testing.T) {
	data := strings.Repeat("H$dgq0", 1000)
	got, err := ContentHashReader(strings.NewReader(data), NameLen)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash([]byte(data), NameLen); got != want {
		t.Errorf("reader %s, bytes %s", got, want)
	}
}

func TestRows_LineSensitive(t *testing.T) {
	a := Rows([]string{"ab", "c"})
	b := Rows([]string{"a", "bc"})
	if a == b {
		t.Error("row boundaries must change the digest")
	}
	if Rows([]string{"ab", "c"}) != a {
		t.Error("digest not stable")
	}
	if Rows([]string{"ab", "c"}) != ContentHash([]byte("ab\nc\n"), 0) {
		t.Error("digest should match the printed text")
	}
}
