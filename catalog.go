package metascope

import (
	"github.com/openmeta/metascope/internal/catalog"
)

// Catalog is an alias to catalog.Catalog.
// Re-exported so embedders can load and supply their own field catalog.
type Catalog = catalog.Catalog

// LoadCatalog parses and validates a YAML field-catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	return catalog.Load(data)
}

// DefaultCatalog returns the catalog built from the embedded document.
func DefaultCatalog() *Catalog {
	return catalog.Default()
}
