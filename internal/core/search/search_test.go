package search

import "testing"

func TestTSQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"empty", "", "", false},
		{"blank", "   \t\n ", "", false},
		{"single", "diffusion", "'diffusion':*", true},
		{"multi terms and", "neural radiance fields", "'neural':* & 'radiance':* & 'fields':*", true},
		{"case folded", "NeRF Splatting", "'nerf':* & 'splatting':*", true},
		{"quote doubled", "o'brien", "'o''brien':*", true},
		{"backslash stripped", `gauss\ian`, "'gaussian':*", true},
		{"injection stays literal", "a' | 'b", "'a''':* & '|':* & '''b':*", true},
		{"collapse inner whitespace", "  a   b  ", "'a':* & 'b':*", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := TSQuery(c.in)
			if ok != c.ok {
				t.Fatalf("TSQuery(%q) ok = %v, want %v", c.in, ok, c.ok)
			}
			if got != c.want {
				t.Fatalf("TSQuery(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestTSQueryAllStrippedTerms(t *testing.T) {
	t.Parallel()

	if q, ok := TSQuery(`\ \\`); ok {
		t.Fatalf("expected no query, got %q", q)
	}
}
