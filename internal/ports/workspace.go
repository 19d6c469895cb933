package ports

import "github.com/aalvaropc/factura/internal/domain"

// WorkspaceLocator finds a Factura workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
