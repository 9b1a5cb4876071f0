package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/swissrenewables/backend/internal/domain"
	"github.com/swissrenewables/backend/internal/pkg/logger"
	"github.com/swissrenewables/backend/pkg/utils"
)

// Preview row bounds
const (
	DefaultPreviewRows = 5
	MaxPreviewRows     = 100
)

// DashboardConfig names the datasets a dashboard renders
type DashboardConfig struct {
	DataKey     string // plant table key passed to the loader
	GeoKey      string // canton boundary document; empty disables geometry
	PreviewRows int
}

// DashboardService runs the canton pipeline for every dashboard request,
// starting from the cached plant table
type DashboardService struct {
	plants   PlantLoader
	geometry GeometryLoader
	names    domain.CantonNameMap
	cfg      DashboardConfig

	warned sync.Map // source keys already reported for unmapped cantons
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(plants PlantLoader, geometry GeometryLoader, cfg DashboardConfig) *DashboardService {
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = DefaultPreviewRows
	}
	return &DashboardService{
		plants:   plants,
		geometry: geometry,
		names:    domain.CantonNames,
		cfg:      cfg,
	}
}

// Warmup loads the plant table and the canton geometry concurrently
func (s *DashboardService) Warmup(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		table, err := s.plants.Load(egCtx, s.cfg.DataKey)
		if err != nil {
			return fmt.Errorf("dashboard: failed to load plants: %w", err)
		}
		logger.Infof(egCtx, "loaded %d plants from %s", table.Len(), s.cfg.DataKey)
		return nil
	})

	if s.cfg.GeoKey != "" {
		eg.Go(func() error {
			geo, err := s.geometry.Get(egCtx, s.cfg.GeoKey)
			if err != nil {
				return fmt.Errorf("dashboard: failed to load geometry: %w", err)
			}
			logger.Infof(egCtx, "loaded %d canton regions from %s", len(geo.Regions), s.cfg.GeoKey)
			return nil
		})
	}

	return eg.Wait()
}

// MetricNames returns the map selector entries
func (s *DashboardService) MetricNames() []string {
	return MetricNames()
}

// resolved returns the cached plant table with canton names applied
func (s *DashboardService) resolved(ctx context.Context) (*domain.PlantTable, error) {
	table, err := s.plants.Load(ctx, s.cfg.DataKey)
	if err != nil {
		return nil, err
	}

	if _, done := s.warned.LoadOrStore(table.Source, struct{}{}); !done {
		if codes := UnmappedCodes(table, s.names); len(codes) > 0 {
			logger.Warnf(ctx, "%s: canton codes without a display name: %s", table.Source, strings.Join(codes, ", "))
		}
	}

	return ResolveCantonNames(table, s.names), nil
}

// Aggregates computes every canton aggregate
func (s *DashboardService) Aggregates(ctx context.Context) (domain.AggregateSet, error) {
	table, err := s.resolved(ctx)
	if err != nil {
		return domain.AggregateSet{}, err
	}
	return AggregateAll(table), nil
}

// Aggregate computes the per-canton sum of one metric
func (s *DashboardService) Aggregate(ctx context.Context, metric domain.Metric) (domain.CantonAggregate, error) {
	table, err := s.resolved(ctx)
	if err != nil {
		return domain.CantonAggregate{}, err
	}
	return Aggregate(table, metric), nil
}

// Preview returns the first rows of the resolved plant table
func (s *DashboardService) Preview(ctx context.Context, rows int) (domain.DatasetPreview, error) {
	if rows <= 0 {
		rows = s.cfg.PreviewRows
	}
	rows = utils.Clamp(rows, 1, MaxPreviewRows)

	table, err := s.resolved(ctx)
	if err != nil {
		return domain.DatasetPreview{}, err
	}

	n := utils.Clamp(rows, 0, table.Len())
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = table.Records[i].Values
	}

	return domain.DatasetPreview{
		Columns:   table.Columns,
		Rows:      out,
		TotalRows: table.Len(),
	}, nil
}

// Choropleth builds the map payload for a selector entry
func (s *DashboardService) Choropleth(ctx context.Context, metricName string) (domain.ChoroplethData, error) {
	table, err := s.resolved(ctx)
	if err != nil {
		return domain.ChoroplethData{}, err
	}

	view, err := SelectView(metricName, AggregateAll(table))
	if err != nil {
		return domain.ChoroplethData{}, err
	}

	var geo *domain.RegionGeometry
	if s.cfg.GeoKey != "" {
		if geo, err = s.geometry.Get(ctx, s.cfg.GeoKey); err != nil {
			return domain.ChoroplethData{}, err
		}
	}

	locations := view.Aggregate.Cantons()
	values := make([]float64, len(locations))
	unmatched := make([]string, 0)
	for i, canton := range locations {
		values[i] = view.Aggregate.Values[canton]
		if geo != nil && !geo.Has(canton) {
			unmatched = append(unmatched, canton)
		}
	}

	return domain.ChoroplethData{
		View:      view,
		Locations: locations,
		Values:    values,
		Unmatched: unmatched,
		Layout:    domain.DefaultMapLayout,
	}, nil
}

// Scatter builds the production vs tariff plot
func (s *DashboardService) Scatter(ctx context.Context) (domain.ScatterData, error) {
	table, err := s.resolved(ctx)
	if err != nil {
		return domain.ScatterData{}, err
	}
	return BuildScatter(table, AggregateCombined(table)), nil
}

// Geometry returns the canton boundary document
func (s *DashboardService) Geometry(ctx context.Context) (*domain.RegionGeometry, error) {
	if s.cfg.GeoKey == "" {
		return nil, ErrGeometryDisabled
	}
	return s.geometry.Get(ctx, s.cfg.GeoKey)
}
