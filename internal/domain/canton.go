package domain

import "sort"

// CantonNameMap resolves two-letter canton codes to display names
type CantonNameMap interface {
	Lookup(code string) (string, bool)
	Len() int
}

type cantonNameMap map[string]string

func (m cantonNameMap) Lookup(code string) (string, bool) {
	name, ok := m[code]
	return name, ok
}

func (m cantonNameMap) Len() int {
	return len(m)
}

// CantonNames is the fixed table of the 26 Swiss cantons. Names match the
// kan_name property of the canton boundary GeoJSON.
var CantonNames CantonNameMap = cantonNameMap{
	"TG": "Thurgau",
	"GR": "Graubünden",
	"LU": "Luzern",
	"BE": "Bern",
	"VS": "Valais",
	"BL": "Basel-Landschaft",
	"SO": "Solothurn",
	"VD": "Vaud",
	"SH": "Schaffhausen",
	"ZH": "Zürich",
	"AG": "Aargau",
	"UR": "Uri",
	"NE": "Neuchâtel",
	"TI": "Ticino",
	"SG": "St. Gallen",
	"GE": "Genève",
	"GL": "Glarus",
	"JU": "Jura",
	"ZG": "Zug",
	"OW": "Obwalden",
	"FR": "Fribourg",
	"SZ": "Schwyz",
	"AR": "Appenzell Ausserrhoden",
	"AI": "Appenzell Innerrhoden",
	"NW": "Nidwalden",
	"BS": "Basel-Stadt",
}

// CantonAggregate holds one summed metric per canton name
type CantonAggregate struct {
	Metric Metric             `json:"metric"`
	Values map[string]float64 `json:"values"`
}

// Cantons returns the aggregate keys sorted
func (a CantonAggregate) Cantons() []string {
	return sortedKeys(a.Values)
}

// CantonTotals holds all three summed metrics for one canton
type CantonTotals struct {
	ElectricalCapacity float64 `json:"electrical_capacity"`
	Production         float64 `json:"production"`
	Tariff             float64 `json:"tariff"`
}

// Value returns the total for m
func (t CantonTotals) Value(m Metric) float64 {
	switch m {
	case MetricElectricalCapacity:
		return t.ElectricalCapacity
	case MetricProduction:
		return t.Production
	case MetricTariff:
		return t.Tariff
	}
	return 0
}

// CombinedAggregate holds every metric per canton, used by the scatter view
type CombinedAggregate struct {
	Rows map[string]CantonTotals `json:"rows"`
}

// Cantons returns the aggregate keys sorted
func (a CombinedAggregate) Cantons() []string {
	return sortedKeys(a.Rows)
}

// Metric reshapes the combined table into a single-metric aggregate
func (a CombinedAggregate) Metric(m Metric) CantonAggregate {
	values := make(map[string]float64, len(a.Rows))
	for canton, totals := range a.Rows {
		values[canton] = totals.Value(m)
	}
	return CantonAggregate{Metric: m, Values: values}
}

// AggregateSet is every canton aggregate derived from one plant table
type AggregateSet struct {
	ElectricalCapacity CantonAggregate   `json:"electrical_capacity"`
	Production         CantonAggregate   `json:"production"`
	Tariff             CantonAggregate   `json:"tariff"`
	Combined           CombinedAggregate `json:"combined"`
}

// ByMetric returns the single-metric aggregate for m
func (s AggregateSet) ByMetric(m Metric) (CantonAggregate, bool) {
	switch m {
	case MetricElectricalCapacity:
		return s.ElectricalCapacity, true
	case MetricProduction:
		return s.Production, true
	case MetricTariff:
		return s.Tariff, true
	}
	return CantonAggregate{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
