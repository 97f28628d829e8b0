// Package datescope models the set of submission dates a caller may read.
// A scope is a list of day specs, an unrestricted marker, or empty (nothing
// readable). Dates are YYYY-MM-DD strings throughout; lexicographic order on
// that layout is chronological order
package datescope

import (
	"encoding/json"
	"strings"
	"time"

	perr "paperscope/internal/platform/errors"
)

// Layout is the wire format for days
const Layout = "2006-01-02"

// DefaultWindowDays is how far back an unauthenticated or unresolvable
// caller may read
const DefaultWindowDays = 7

// Spec is one granted span of days, inclusive. A single day has Start == End
type Spec struct {
	Start string
	End   string
}

// Scope is a resolved set of readable days
type Scope struct {
	unrestricted bool
	specs        []Spec
}

// Unrestricted returns the scope that allows every date
func Unrestricted() Scope { return Scope{unrestricted: true} }

// Empty returns the scope that allows nothing
func Empty() Scope { return Scope{} }

// FromSpecs builds a scope from granted spans
func FromSpecs(specs ...Spec) Scope {
	return Scope{specs: append([]Spec(nil), specs...)}
}

// Window returns the trailing n-day scope ending at now, inclusive
func Window(now time.Time, days int) Scope {
	if days < 1 {
		days = 1
	}
	end := now.UTC()
	start := end.AddDate(0, 0, -(days - 1))
	return FromSpecs(Spec{Start: start.Format(Layout), End: end.Format(Layout)})
}

// DefaultWindow is the fallback scope for callers without a usable grant
func DefaultWindow(now time.Time) Scope { return Window(now, DefaultWindowDays) }

// ParseList decodes a stored grant list: a JSON array whose entries are a
// single day, a "start:end" span, or "*" for unrestricted. Callers decide
// what a malformed list degrades to; this only reports the defect
func ParseList(raw string) (Scope, error) {
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return Empty(), perr.Wrap(err, perr.ErrorCodeInvalidArgument, "accessible dates is not a JSON list")
	}

	var specs []Spec
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "*" {
			return Unrestricted(), nil
		}
		if from, to, ok := strings.Cut(e, ":"); ok {
			s, err := parseDay(from)
			if err != nil {
				return Empty(), err
			}
			t, err := parseDay(to)
			if err != nil {
				return Empty(), err
			}
			if s > t {
				return Empty(), perr.InvalidArgf("date span %q runs backwards", e)
			}
			specs = append(specs, Spec{Start: s, End: t})
			continue
		}
		d, err := parseDay(e)
		if err != nil {
			return Empty(), err
		}
		specs = append(specs, Spec{Start: d, End: d})
	}
	return Scope{specs: specs}, nil
}

func parseDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(Layout, s); err != nil {
		return "", perr.InvalidArgf("malformed date %q", s)
	}
	return s, nil
}

// Unrestricted reports whether every date is readable
func (s Scope) Unrestricted() bool { return s.unrestricted }

// Empty reports whether nothing is readable
func (s Scope) Empty() bool { return !s.unrestricted && len(s.specs) == 0 }

// Specs returns the granted spans; nil when unrestricted or empty
func (s Scope) Specs() []Spec { return s.specs }

// Allows reports whether the given YYYY-MM-DD day is inside the scope
func (s Scope) Allows(date string) bool {
	if s.unrestricted {
		return true
	}
	for _, sp := range s.specs {
		if date >= sp.Start && date <= sp.End {
			return true
		}
	}
	return false
}
