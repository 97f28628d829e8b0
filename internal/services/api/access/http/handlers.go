// Package http provides http transport for access
package http

import (
	stdhttp "net/http"

	"paperscope/internal/modkit/httpkit"
	"paperscope/internal/services/api/access/domain"
	svc "paperscope/internal/services/api/access/service"
)

// Register mounts access endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ValidateInput](r, "/validate", h.validate)
}

type handlers struct{ svc svc.Service }

// @Summary Validate an access token
// @Tags Access
// @Accept json
// @Produce json
// @Param payload body domain.ValidateInput true "Credential"
// @Success 200 {object} domain.GrantInfo "ok"
// @Failure 401 {object} httpkit.Envelope "invalid token"
// @Router /access/validate [post]
func (h *handlers) validate(r *stdhttp.Request, in domain.ValidateInput) (any, error) {
	return h.svc.Validate(r.Context(), in.Token)
}
