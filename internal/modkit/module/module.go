// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "paperscope/internal/platform/net/http"
)

// Module is the minimal contract used by modkit.
// Sibling to modkit.Module to avoid import knots when a module also exports
// its own ports type
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
