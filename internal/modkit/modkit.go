// Package modkit provides module wiring and the shared deps bundle
package modkit

import (
	phttp "paperscope/internal/platform/net/http"
)

// Module is the common surface for API modules that mount routes and expose
// ports. Kept tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes on the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options.
// Modules expose New(deps Deps, opts ...Option) Module following this shape
type Builder func(Deps, ...Option) Module
