// Package repo provides postgres access for papers
package repo

import (
	"context"
	"fmt"
	"strings"

	"paperscope/internal/core/catalog"
	"paperscope/internal/core/datescope"
	"paperscope/internal/modkit/repokit"
	perr "paperscope/internal/platform/errors"
)

// Filter is the fully resolved predicate for one listing query. Count and
// Page share it verbatim so totals always agree with rows
type Filter struct {
	Category catalog.Category
	Date     string
	From, To string
	TSQuery  string
	Scope    datescope.Scope
	Limit    int
	Offset   int
}

// Repo defines the repository contract for papers
type Repo interface {
	Count(ctx context.Context, f Filter) (int64, error)
	Page(ctx context.Context, f Filter) ([]RowPaper, error)
	Dates(ctx context.Context, c catalog.Category, scope datescope.Scope) ([]RowDateCount, error)
	FiguresFor(ctx context.Context, ids []string) (map[string][]RowFigure, error)
}

// RowPaper is a paper row from the database
type RowPaper struct {
	ID              string
	Title           string
	Authors         []string
	Categories      []string
	PrimaryCategory string
	Abstract        string
	SubmittedDate   string
	AnnounceDate    *string
	ScrapedDate     string
	PdfURL          string
	CodeURL         string
	ProjectURL      string
	Comments        string
	CreatedAt       string
}

// RowFigure is a figure row from the database
type RowFigure struct {
	PaperID  string
	ID       string
	Kind     string
	Key      string
	ThumbKey string
	Width    *int
	Height   *int
}

// RowDateCount is one histogram bucket from the database
type RowDateCount struct {
	Date  string
	Count int64
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// binder collects numbered args as SQL fragments reference them
type binder struct{ args []any }

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// whereClause renders the shared predicate. Only catalog-validated
// identifiers are ever interpolated; every value rides a numbered arg
func whereClause(f Filter, bind func(any) string) string {
	var conds []string

	if f.TSQuery != "" {
		conds = append(conds, "search_tsv @@ to_tsquery('simple', "+bind(f.TSQuery)+")")
	}

	// exact date beats range when both slipped through
	switch {
	case f.Date != "":
		conds = append(conds, "submitted_date = "+bind(f.Date)+"::date")
	case f.From != "" && f.To != "":
		conds = append(conds,
			"submitted_date between "+bind(f.From)+"::date and "+bind(f.To)+"::date")
	}

	if c := scopeCond(f.Scope, bind); c != "" {
		conds = append(conds, c)
	}

	if len(conds) == 0 {
		return ""
	}
	return "where " + strings.Join(conds, "\nand ")
}

// scopeCond renders the access scope. Unrestricted adds nothing; an empty
// scope matches nothing
func scopeCond(s datescope.Scope, bind func(any) string) string {
	if s.Unrestricted() {
		return ""
	}
	specs := s.Specs()
	if len(specs) == 0 {
		return "false"
	}
	ors := make([]string, 0, len(specs))
	for _, sp := range specs {
		if sp.Start == sp.End {
			ors = append(ors, "submitted_date = "+bind(sp.Start)+"::date")
		} else {
			ors = append(ors, "submitted_date between "+bind(sp.Start)+"::date and "+bind(sp.End)+"::date")
		}
	}
	return "(" + strings.Join(ors, " or ") + ")"
}

func orderClause(f Filter, bind func(any) string) string {
	if f.TSQuery != "" {
		return "order by ts_rank(search_tsv, to_tsquery('simple', " + bind(f.TSQuery) + ")) desc, " +
			"submitted_date desc, created_at desc"
	}
	return "order by submitted_date desc, created_at desc"
}

func (r *queries) Count(ctx context.Context, f Filter) (int64, error) {
	b := &binder{}
	where := whereClause(f, b.bind)

	sql := fmt.Sprintf("select count(*) from %s\n%s", f.Category.Table(), where)
	var total int64
	if err := r.q.QueryRow(ctx, sql, b.args...).Scan(&total); err != nil {
		return 0, perr.FromPostgres(err, "count papers")
	}
	return total, nil
}

func (r *queries) Page(ctx context.Context, f Filter) ([]RowPaper, error) {
	b := &binder{}
	where := whereClause(f, b.bind)
	order := orderClause(f, b.bind)

	sql := fmt.Sprintf(`
select id, title, authors, categories, primary_category, abstract,
submitted_date::text, announce_date::text, scraped_date::text,
coalesce(pdf_url, ''), coalesce(code_url, ''), coalesce(project_url, ''), coalesce(comments, ''),
created_at::text
from %s
%s
%s
limit %s offset %s
`, f.Category.Table(), where, order, b.bind(f.Limit), b.bind(f.Offset))

	rows, err := r.q.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list papers")
	}
	defer rows.Close()

	var out []RowPaper
	for rows.Next() {
		var rr RowPaper
		if err := rows.Scan(
			&rr.ID,
			&rr.Title,
			&rr.Authors,
			&rr.Categories,
			&rr.PrimaryCategory,
			&rr.Abstract,
			&rr.SubmittedDate,
			&rr.AnnounceDate,
			&rr.ScrapedDate,
			&rr.PdfURL,
			&rr.CodeURL,
			&rr.ProjectURL,
			&rr.Comments,
			&rr.CreatedAt,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan paper")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Dates(ctx context.Context, c catalog.Category, scope datescope.Scope) ([]RowDateCount, error) {
	b := &binder{}
	where := whereClause(Filter{Scope: scope}, b.bind)

	sql := fmt.Sprintf(`
select submitted_date::text, count(*)
from %s
%s
group by submitted_date
order by submitted_date desc
`, c.Table(), where)

	rows, err := r.q.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "date histogram")
	}
	defer rows.Close()

	var out []RowDateCount
	for rows.Next() {
		var rr RowDateCount
		if err := rows.Scan(&rr.Date, &rr.Count); err != nil {
			return nil, perr.FromPostgres(err, "scan bucket")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) FiguresFor(ctx context.Context, ids []string) (map[string][]RowFigure, error) {
	if len(ids) == 0 {
		return map[string][]RowFigure{}, nil
	}
	const sql = `
select paper_id, id, kind, r2_key, coalesce(thumb_key, ''), width, height
from figures
where paper_id = any($1)
order by paper_id, id
`
	rows, err := r.q.Query(ctx, sql, ids)
	if err != nil {
		return nil, perr.FromPostgres(err, "list figures")
	}
	defer rows.Close()

	out := make(map[string][]RowFigure, len(ids))
	for rows.Next() {
		var rr RowFigure
		if err := rows.Scan(&rr.PaperID, &rr.ID, &rr.Kind, &rr.Key, &rr.ThumbKey, &rr.Width, &rr.Height); err != nil {
			return nil, perr.FromPostgres(err, "scan figure")
		}
		out[rr.PaperID] = append(out[rr.PaperID], rr)
	}
	return out, rows.Err()
}
