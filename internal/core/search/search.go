// Package search turns free text into a tsquery argument for prefix search
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// TSQuery builds the argument for to_tsquery('simple', $n) from free text:
// whitespace-split terms, case-folded, quoted with internal quotes doubled,
// prefix-matched, ANDed. ok=false when the input has no terms, which callers
// treat as "no search". Raw user text never reaches the tsquery grammar
func TSQuery(input string) (q string, ok bool) {
	terms := strings.Fields(input)
	if len(terms) == 0 {
		return "", false
	}
	// a Caser carries state and must not be shared across goroutines
	folder := cases.Fold()
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		t = folder.String(t)
		// backslashes are tsquery escapes even inside quoted lexemes
		t = strings.ReplaceAll(t, `\`, "")
		t = strings.ReplaceAll(t, "'", "''")
		if t == "" {
			continue
		}
		parts = append(parts, "'"+t+"':*")
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " & "), true
}
