package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/swissrenewables/backend/internal/domain"
)

// DemoKey is the key of the built-in sample dataset
const DemoKey = "demo"

type dataset struct {
	header []string
	rows   [][]string
}

// Source implements domain.PlantSource over in-process datasets, for demo mode and tests
type Source struct {
	mu       sync.Mutex
	datasets map[string]dataset
	reads    map[string]int
}

// NewSource creates an empty in-memory source
func NewSource() *Source {
	return &Source{
		datasets: make(map[string]dataset),
		reads:    make(map[string]int),
	}
}

// NewDemoSource creates a source holding a small sample of Swiss plants under DemoKey
func NewDemoSource() *Source {
	s := NewSource()
	s.Set(DemoKey,
		[]string{"energy_source_level_2", "technology", "canton", "municipality", "electrical_capacity", "production", "tariff"},
		[][]string{
			{"Hydro", "Run-of-river", "VS", "Sion", "38.5", "152000", "4200000"},
			{"Hydro", "Run-of-river", "BE", "Mühleberg", "22.1", "98000", "2900000"},
			{"Solar", "Photovoltaics", "ZH", "Winterthur", "1.2", "1150", "310000"},
			{"Solar", "Photovoltaics", "ZH", "Zürich", "0.8", "760", "205000"},
			{"Wind", "Onshore", "JU", "Saint-Brais", "8.4", "14500", "2100000"},
			{"Bioenergy", "Biomass and biogas", "TG", "Frauenfeld", "2.6", "17800", "3400000"},
			{"Solar", "Photovoltaics", "GE", "Genève", "0.5", "520", "150000"},
			{"Hydro", "Run-of-river", "GR", "Chur", "12.0", "61000", "2400000"},
		},
	)
	return s
}

// Set stores or replaces the dataset under key
func (s *Source) Set(key string, header []string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[key] = dataset{header: header, rows: rows}
}

// Reads returns how many times key has been read
func (s *Source) Reads(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[key]
}

// Read builds a table from the dataset stored under key
func (s *Source) Read(ctx context.Context, key string) (*domain.PlantTable, error) {
	s.mu.Lock()
	s.reads[key]++
	ds, ok := s.datasets[key]
	s.mu.Unlock()

	if !ok {
		return nil, &domain.DataSourceError{Source: key, Err: fmt.Errorf("dataset not found: %w", os.ErrNotExist)}
	}

	rows := make([][]string, len(ds.rows))
	for i, r := range ds.rows {
		rows[i] = append([]string(nil), r...)
	}
	return domain.NewPlantTable(key, append([]string(nil), ds.header...), rows)
}

// Health always returns nil for in-memory data
func (s *Source) Health(ctx context.Context) error {
	return nil
}
