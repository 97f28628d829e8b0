// Package module wires papers into the API using modkit
package module

import (
	"net/http"

	modkit "paperscope/internal/modkit"
	"paperscope/internal/modkit/httpkit"
	str "paperscope/internal/platform/strings"
	accessdom "paperscope/internal/services/api/access/domain"
	papershttp "paperscope/internal/services/api/papers/http"
	papersrepo "paperscope/internal/services/api/papers/repo"
	paperssvc "paperscope/internal/services/api/papers/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc paperssvc.Service
}

// New constructs a papers module. The access resolver port is injected via
// modkit.WithPorts(Ports{...}) from main wiring
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("papers"), modkit.WithPrefix("/papers")}, opts...)...)

	in, ok := b.Ports.(Ports)
	if !ok || in.Access == nil {
		panic("papers module requires the access resolver port")
	}

	svc := paperssvc.New(deps.PG, papersrepo.NewPG(), in.Access, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptPapersPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		papershttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports declares what the papers module consumes from its neighbors
type Ports struct {
	Access accessdom.ResolverPort
}
