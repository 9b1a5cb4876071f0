package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Metric is one of the numeric plant measurements aggregated per canton
type Metric string

const (
	MetricElectricalCapacity Metric = "electrical_capacity"
	MetricProduction         Metric = "production"
	MetricTariff             Metric = "tariff"
)

// Metrics lists every aggregatable metric in column order
var Metrics = []Metric{MetricElectricalCapacity, MetricProduction, MetricTariff}

// ParseMetric converts a column name into a Metric
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &UnknownMetricError{Name: s}
}

// Source column names the pipeline depends on
const (
	ColumnCanton     = "canton"
	ColumnCantonName = "canton_name"
)

// RequiredColumns must be present in every plant dataset header
var RequiredColumns = []string{
	ColumnCanton,
	string(MetricElectricalCapacity),
	string(MetricProduction),
	string(MetricTariff),
}

// PlantRecord is one power plant row
type PlantRecord struct {
	Canton             string   `json:"canton"`
	CantonName         string   `json:"canton_name"`
	ElectricalCapacity float64  `json:"electrical_capacity"`
	Production         float64  `json:"production"`
	Tariff             float64  `json:"tariff"`
	Values             []string `json:"-"` // raw cells aligned with PlantTable.Columns
}

// Value returns the measurement for m
func (r PlantRecord) Value(m Metric) float64 {
	switch m {
	case MetricElectricalCapacity:
		return r.ElectricalCapacity
	case MetricProduction:
		return r.Production
	case MetricTariff:
		return r.Tariff
	}
	return 0
}

// PlantTable is an ordered set of plant records read from one source
type PlantTable struct {
	Source  string        `json:"source"`
	Columns []string      `json:"columns"`
	Records []PlantRecord `json:"records"`
}

// Len returns the number of records
func (t *PlantTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// CantonNames returns distinct canton names in order of first appearance
func (t *PlantTable) CantonNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, 26)
	for _, r := range t.Records {
		if r.CantonName == "" {
			continue
		}
		if _, ok := seen[r.CantonName]; ok {
			continue
		}
		seen[r.CantonName] = struct{}{}
		names = append(names, r.CantonName)
	}
	return names
}

// NewPlantTable builds a table from a header and text rows. Every column is kept;
// the canton code and the three metrics are parsed into typed fields. Missing
// measurements count as zero.
func NewPlantTable(source string, header []string, rows [][]string) (*PlantTable, error) {
	if len(header) == 0 {
		return nil, &DataSourceError{Source: source, Err: ErrEmptyDataset}
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		columns[i] = h
		key := NormalizeColumn(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &DataSourceError{Source: source, Err: fmt.Errorf("missing required column %q", col)}
		}
	}
	cantonIdx := index[ColumnCanton]
	capIdx := index[string(MetricElectricalCapacity)]
	prodIdx := index[string(MetricProduction)]
	tariffIdx := index[string(MetricTariff)]

	records := make([]PlantRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, &DataSourceError{
				Source: source,
				Err:    fmt.Errorf("row %d: expected %d fields, got %d", i+1, len(columns), len(row)),
			}
		}

		rec := PlantRecord{
			Canton: row[cantonIdx],
			Values: row,
		}
		rec.CantonName = rec.Canton

		var err error
		if rec.ElectricalCapacity, err = parseMeasurement(row[capIdx]); err != nil {
			return nil, &DataSourceError{Source: source, Err: fmt.Errorf("row %d: %s: %w", i+1, MetricElectricalCapacity, err)}
		}
		if rec.Production, err = parseMeasurement(row[prodIdx]); err != nil {
			return nil, &DataSourceError{Source: source, Err: fmt.Errorf("row %d: %s: %w", i+1, MetricProduction, err)}
		}
		if rec.Tariff, err = parseMeasurement(row[tariffIdx]); err != nil {
			return nil, &DataSourceError{Source: source, Err: fmt.Errorf("row %d: %s: %w", i+1, MetricTariff, err)}
		}

		records = append(records, rec)
	}

	return &PlantTable{
		Source:  source,
		Columns: columns,
		Records: records,
	}, nil
}

// NormalizeColumn returns the lookup form of a header name: lower case with
// surrounding space and a leading byte order mark removed
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

// parseMeasurement reads a numeric cell; null markers and NaN are zero, infinities are rejected
func parseMeasurement(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null", "none":
		return 0, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	return v, nil
}
