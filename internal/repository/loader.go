package repository

import (
	"context"

	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
)

// Loader returns plant tables from a source, reading each key at most once
type Loader struct {
	memo *Memo[*domain.PlantTable]
}

// NewLoader creates a loader over source
func NewLoader(source domain.PlantSource) *Loader {
	return &Loader{memo: NewMemo(source.Read)}
}

// Load returns the table stored under path. Repeated calls return the same
// instance without touching the source again.
func (l *Loader) Load(ctx context.Context, path string) (*domain.PlantTable, error) {
	if l.Loaded(path) {
		logger.Debugf(ctx, "plant table %s served from cache", path)
	}
	return l.memo.Get(ctx, path)
}

// Loaded reports whether path has already been read
func (l *Loader) Loaded(path string) bool {
	return l.memo.Cached(path)
}
