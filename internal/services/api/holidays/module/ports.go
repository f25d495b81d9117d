package module

import (
	"holidays/internal/services/api/holidays/domain"
)

// Ports is what the holidays module exposes to other modules
type Ports struct {
	Catalog domain.CatalogPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Catalog: m.svc} }
