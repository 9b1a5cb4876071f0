package geojson

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/swissrenewables/backend/internal/domain"
)

// RegionProperty is the feature property holding the canton display name
const RegionProperty = "kan_name"

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Properties map[string]interface{} `json:"properties"`
	} `json:"features"`
}

// Source reads canton boundary documents from disk
type Source struct{}

// NewSource creates a GeoJSON file source
func NewSource() *Source {
	return &Source{}
}

// Read loads the GeoJSON at path and indexes its region identifiers
func (s *Source) Read(ctx context.Context, path string) (*domain.RegionGeometry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: err}
	}
	return Parse(path, raw)
}

// Parse decodes a FeatureCollection and extracts properties.kan_name of each feature
func Parse(source string, raw []byte) (*domain.RegionGeometry, error) {
	var fc featureCollection
	if err := sonic.Unmarshal(raw, &fc); err != nil {
		return nil, &domain.DataSourceError{Source: source, Err: fmt.Errorf("failed to decode geojson: %w", err)}
	}
	if fc.Type != "FeatureCollection" {
		return nil, &domain.DataSourceError{Source: source, Err: fmt.Errorf("unexpected geojson type %q", fc.Type)}
	}

	regions := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		if name, ok := regionName(f.Properties[RegionProperty]); ok {
			regions = append(regions, name)
		}
	}

	return &domain.RegionGeometry{Raw: raw, Regions: regions}, nil
}

// regionName accepts both a plain string and the single-element array some
// exports use for kan_name
func regionName(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case []interface{}:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}
