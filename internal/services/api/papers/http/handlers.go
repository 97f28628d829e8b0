// Package http provides http transport for papers
package http

import (
	stdhttp "net/http"

	"paperscope/internal/modkit/httpkit"
	"paperscope/internal/services/api/papers/domain"
	svc "paperscope/internal/services/api/papers/service"
)

// Register mounts papers endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.QueryInput](r, "/", h.query)
	httpkit.GetQuery[domain.DatesInput](r, "/dates", h.dates)
}

type handlers struct{ svc svc.Service }

// @Summary Query one page of papers
// @Tags Papers
// @Produce json
// @Param category query string true "served category" example(cs.CV)
// @Param date query string false "exact submission date"
// @Param from query string false "range start, requires to"
// @Param to query string false "range end, requires from"
// @Param search query string false "prefix search terms"
// @Param searchScope query string false "all or current"
// @Param page query int false "1-based page"
// @Param limit query int false "page size, capped at 200"
// @Param consistency query string false "prior page token"
// @Success 200 {object} domain.QueryOutput "ok"
// @Failure 422 {object} httpkit.Envelope "unknown category"
// @Router /papers [get]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	in.RemoteIP = r.RemoteAddr
	return h.svc.Query(r.Context(), in)
}

// @Summary Submission-date histogram for a category
// @Tags Papers
// @Produce json
// @Param category query string true "served category" example(cs.CV)
// @Success 200 {object} domain.DatesOutput "ok"
// @Router /papers/dates [get]
func (h *handlers) dates(r *stdhttp.Request, in domain.DatesInput) (any, error) {
	in.RemoteIP = r.RemoteAddr
	return h.svc.Dates(r.Context(), in)
}
