package module

import (
	"context"

	papersdom "paperscope/internal/services/api/papers/domain"
	paperssvc "paperscope/internal/services/api/papers/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptPapersPort adapts the papers service to the domain port interface
type adaptPapersPort struct{ svc paperssvc.Service }

// Query implements the domain ServicePort interface
func (a adaptPapersPort) Query(ctx context.Context, in papersdom.QueryInput) (papersdom.QueryOutput, error) {
	return a.svc.Query(ctx, in)
}

// Dates implements the domain ServicePort interface
func (a adaptPapersPort) Dates(ctx context.Context, in papersdom.DatesInput) (papersdom.DatesOutput, error) {
	return a.svc.Dates(ctx, in)
}
