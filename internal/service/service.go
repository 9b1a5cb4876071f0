package service

import (
	"context"
	"errors"

	"github.com/swissrenewables/backend/internal/domain"
)

// ErrGeometryDisabled is returned when no canton geometry is configured
var ErrGeometryDisabled = errors.New("canton geometry is not configured")

// PlantLoader returns cached plant tables by key
type PlantLoader interface {
	Load(ctx context.Context, key string) (*domain.PlantTable, error)
}

// GeometryLoader returns cached canton boundary documents by key
type GeometryLoader interface {
	Get(ctx context.Context, key string) (*domain.RegionGeometry, error)
}
