// Package service contains the paper listing workflows
package service

import (
	"context"
	"strings"

	"paperscope/internal/core/catalog"
	"paperscope/internal/core/search"
	"paperscope/internal/modkit/repokit"
	perr "paperscope/internal/platform/errors"
	"paperscope/internal/platform/logger"
	pnet "paperscope/internal/platform/net"
	pstore "paperscope/internal/platform/store"
	accessdom "paperscope/internal/services/api/access/domain"
	"paperscope/internal/services/api/papers/domain"
	"paperscope/internal/services/api/papers/repo"
)

const (
	defaultLimit = 100
	maxLimit     = 200
)

// Service defines the service contract for papers
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	access accessdom.ResolverPort
	log    logger.Logger
}

// New creates a new papers service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], access accessdom.ResolverPort, log logger.Logger) *Svc {
	if db == nil {
		panic("papers.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("papers.Service requires a non nil Repo binder")
	}
	if access == nil {
		panic("papers.Service requires the access resolver port")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, access: access, log: log}
}

// Query returns one page of papers under the caller's resolved scope
func (s *Svc) Query(ctx context.Context, in domain.QueryInput) (domain.QueryOutput, error) {
	var zero domain.QueryOutput

	cat, err := catalog.Parse(in.Category)
	if err != nil {
		return zero, err
	}
	if (in.From == "") != (in.To == "") {
		return zero, perr.Validationf("from and to must be supplied together")
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cred, _ := pnet.CredentialFrom(ctx)
	scope, err := s.access.Resolve(ctx, cred, in.RemoteIP)
	if err != nil {
		return zero, err
	}

	tsq, searching := search.TSQuery(in.Search)

	searchScope := in.SearchScope
	if searchScope == "" {
		searchScope = "current"
	}
	date, from, to := in.Date, in.From, in.To
	if searching && searchScope == "all" {
		// deliberate widening: search across every date the scope allows,
		// dropping the explicit filter but never the access scope
		date, from, to = "", "", ""
	}

	// anchor the page sequence before the first read
	sess := pstore.OpenSession(ctx, s.db, in.Consistency)

	f := repo.Filter{
		Category: cat,
		Date:     date,
		From:     from,
		To:       to,
		TSQuery:  tsq,
		Scope:    scope,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return zero, err
	}

	var rows []repo.RowPaper
	if total > 0 && int64(f.Offset) < total {
		if rows, err = s.Repo.Page(ctx, f); err != nil {
			return zero, err
		}
	}

	figures := s.figuresFor(ctx, rows)

	results := make([]domain.Paper, 0, len(rows))
	for _, r := range rows {
		results = append(results, toPaper(r, figures[r.ID]))
	}

	filters := domain.Filters{
		Category: cat.String(),
		Date:     date,
		From:     from,
		To:       to,
	}
	if searching {
		filters.Search = strings.TrimSpace(in.Search)
		filters.SearchScope = searchScope
	}

	return domain.QueryOutput{
		Results: results,
		Pagination: domain.Pagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: int64(f.Offset)+int64(len(rows)) < total,
		},
		Filters:          filters,
		ConsistencyToken: sess.Token(),
	}, nil
}

// Dates returns the submission-date histogram within the caller's scope
func (s *Svc) Dates(ctx context.Context, in domain.DatesInput) (domain.DatesOutput, error) {
	var zero domain.DatesOutput

	cat, err := catalog.Parse(in.Category)
	if err != nil {
		return zero, err
	}

	cred, _ := pnet.CredentialFrom(ctx)
	scope, err := s.access.Resolve(ctx, cred, in.RemoteIP)
	if err != nil {
		return zero, err
	}

	rows, err := s.Repo.Dates(ctx, cat, scope)
	if err != nil {
		return zero, err
	}

	out := domain.DatesOutput{Category: cat.String(), Dates: make([]domain.DateCount, 0, len(rows))}
	for _, r := range rows {
		out.Dates = append(out.Dates, domain.DateCount{Date: r.Date, Count: r.Count})
	}
	return out, nil
}

// figuresFor loads figures for the page in one batch. A batch failure
// degrades to figure-less rows rather than failing the page
func (s *Svc) figuresFor(ctx context.Context, rows []repo.RowPaper) map[string][]repo.RowFigure {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	figs, err := s.Repo.FiguresFor(ctx, ids)
	if err != nil {
		s.log.Warn().Int("papers", len(ids)).Err(err).Msg("figure batch failed, serving page without figures")
		return nil
	}
	return figs
}

func toPaper(r repo.RowPaper, figs []repo.RowFigure) domain.Paper {
	p := domain.Paper{
		ID:              r.ID,
		Title:           r.Title,
		Authors:         r.Authors,
		Categories:      r.Categories,
		PrimaryCategory: r.PrimaryCategory,
		Abstract:        r.Abstract,
		SubmittedDate:   r.SubmittedDate,
		ScrapedDate:     r.ScrapedDate,
		PdfURL:          r.PdfURL,
		CodeURL:         r.CodeURL,
		ProjectURL:      r.ProjectURL,
		Comments:        r.Comments,
		CreatedAt:       r.CreatedAt,
		Figures:         make([]domain.Figure, 0, len(figs)),
	}
	if r.AnnounceDate != nil {
		p.AnnounceDate = *r.AnnounceDate
	}
	for _, f := range figs {
		p.Figures = append(p.Figures, domain.Figure{
			ID:       f.ID,
			Kind:     f.Kind,
			Key:      f.Key,
			ThumbKey: f.ThumbKey,
			Width:    f.Width,
			Height:   f.Height,
		})
	}
	return p
}
