package domain

import "context"

// PlantSource reads a plant table identified by a source key (a file path or a
// table name, depending on the implementation)
type PlantSource interface {
	// Read parses the whole table; it fails with a DataSourceError
	Read(ctx context.Context, key string) (*PlantTable, error)
}

// HealthChecker is implemented by sources backed by a remote service
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RegionGeometry is a canton boundary document
type RegionGeometry struct {
	// Raw is the GeoJSON document as read
	Raw []byte
	// Regions lists the region identifiers (properties.kan_name) in feature order
	Regions []string
}

// Has reports whether a region identifier exists in the geometry
func (g *RegionGeometry) Has(name string) bool {
	if g == nil {
		return false
	}
	for _, r := range g.Regions {
		if r == name {
			return true
		}
	}
	return false
}
