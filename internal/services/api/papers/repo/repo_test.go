package repo

import (
	"reflect"
	"strings"
	"testing"

	"paperscope/internal/core/catalog"
	"paperscope/internal/core/datescope"
)

func mustCategory(t *testing.T, s string) catalog.Category {
	t.Helper()
	c, err := catalog.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestWhereClauseUnrestrictedNoFilters(t *testing.T) {
	t.Parallel()

	b := &binder{}
	got := whereClause(Filter{Scope: datescope.Unrestricted()}, b.bind)
	if got != "" {
		t.Fatalf("whereClause = %q, want empty", got)
	}
	if len(b.args) != 0 {
		t.Fatalf("args = %v, want none", b.args)
	}
}

func TestWhereClauseExactDateBeatsRange(t *testing.T) {
	t.Parallel()

	b := &binder{}
	got := whereClause(Filter{
		Date:  "2024-03-01",
		From:  "2024-02-01",
		To:    "2024-02-28",
		Scope: datescope.Unrestricted(),
	}, b.bind)

	if !strings.Contains(got, "submitted_date = $1::date") {
		t.Fatalf("missing exact date cond: %q", got)
	}
	if strings.Contains(got, "between") {
		t.Fatalf("range must not be applied when an exact date is set: %q", got)
	}
	if !reflect.DeepEqual(b.args, []any{"2024-03-01"}) {
		t.Fatalf("args = %v", b.args)
	}
}

func TestWhereClauseRangeWhenNoExactDate(t *testing.T) {
	t.Parallel()

	b := &binder{}
	got := whereClause(Filter{
		From:  "2024-02-01",
		To:    "2024-02-28",
		Scope: datescope.Unrestricted(),
	}, b.bind)

	if !strings.Contains(got, "submitted_date between $1::date and $2::date") {
		t.Fatalf("missing range cond: %q", got)
	}
	if !reflect.DeepEqual(b.args, []any{"2024-02-01", "2024-02-28"}) {
		t.Fatalf("args = %v", b.args)
	}
}

func TestWhereClauseSearchAndScopeAreANDed(t *testing.T) {
	t.Parallel()

	scope := datescope.FromSpecs(
		datescope.Spec{Start: "2024-01-15", End: "2024-01-15"},
		datescope.Spec{Start: "2024-02-01", End: "2024-02-10"},
	)
	b := &binder{}
	got := whereClause(Filter{TSQuery: "'nerf':*", Scope: scope}, b.bind)

	if !strings.Contains(got, "search_tsv @@ to_tsquery('simple', $1)") {
		t.Fatalf("missing tsquery cond: %q", got)
	}
	if !strings.Contains(got, "(submitted_date = $2::date or submitted_date between $3::date and $4::date)") {
		t.Fatalf("missing scope cond: %q", got)
	}
	if !strings.Contains(got, "\nand ") {
		t.Fatalf("conditions must be ANDed: %q", got)
	}
	if !reflect.DeepEqual(b.args, []any{"'nerf':*", "2024-01-15", "2024-02-01", "2024-02-10"}) {
		t.Fatalf("args = %v", b.args)
	}
}

func TestWhereClauseEmptyScopeMatchesNothing(t *testing.T) {
	t.Parallel()

	b := &binder{}
	got := whereClause(Filter{Scope: datescope.Empty()}, b.bind)
	if got != "where false" {
		t.Fatalf("whereClause = %q, want 'where false'", got)
	}
}

func TestOrderClauseRankedOnlyWhenSearching(t *testing.T) {
	t.Parallel()

	b := &binder{}
	plain := orderClause(Filter{}, b.bind)
	if plain != "order by submitted_date desc, created_at desc" {
		t.Fatalf("plain order = %q", plain)
	}
	if len(b.args) != 0 {
		t.Fatalf("plain order bound args: %v", b.args)
	}

	ranked := orderClause(Filter{TSQuery: "'nerf':*"}, b.bind)
	if !strings.HasPrefix(ranked, "order by ts_rank(search_tsv, to_tsquery('simple', $1)) desc") {
		t.Fatalf("ranked order = %q", ranked)
	}
	if !strings.Contains(ranked, "submitted_date desc, created_at desc") {
		t.Fatalf("ranked order must keep the date tiebreak: %q", ranked)
	}
	if !reflect.DeepEqual(b.args, []any{"'nerf':*"}) {
		t.Fatalf("args = %v", b.args)
	}
}

func TestCountAndPageSharePredicate(t *testing.T) {
	t.Parallel()

	f := Filter{
		Category: mustCategory(t, "cs.CV"),
		TSQuery:  "'diffusion':*",
		From:     "2024-02-01",
		To:       "2024-02-28",
		Scope:    datescope.FromSpecs(datescope.Spec{Start: "2024-02-01", End: "2024-02-28"}),
		Limit:    100,
		Offset:   0,
	}

	cb, pb := &binder{}, &binder{}
	cw := whereClause(f, cb.bind)
	pw := whereClause(f, pb.bind)
	if cw != pw {
		t.Fatalf("count and page predicates diverge:\n%q\n%q", cw, pw)
	}
	if !reflect.DeepEqual(cb.args, pb.args) {
		t.Fatalf("count and page args diverge: %v vs %v", cb.args, pb.args)
	}
}
