package module

import (
	accessdom "paperscope/internal/services/api/access/domain"
)

// Ports exposes the access service to other modules
type Ports struct {
	Access accessdom.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
