package service

import (
	"github.com/swissrenewables/backend/internal/domain"
)

type viewStyle struct {
	field      domain.Metric
	colorScale string
	colorRange [2]float64
}

var (
	// metricNames is the selector order; the first entry is the default map
	metricNames = []string{
		domain.MapInstalledCapacity,
		domain.MapYearlyProduction,
		domain.MapTariff,
	}

	viewStyles = map[string]viewStyle{
		domain.MapInstalledCapacity: {
			field:      domain.MetricElectricalCapacity,
			colorScale: "Electric",
			colorRange: [2]float64{0, 185},
		},
		domain.MapYearlyProduction: {
			field:      domain.MetricProduction,
			colorScale: "Blackbody",
			colorRange: [2]float64{0, 450000},
		},
		domain.MapTariff: {
			field:      domain.MetricTariff,
			colorScale: "Hot",
			colorRange: [2]float64{1000000, 90000000},
		},
	}
)

// MetricNames returns the map types offered by the selector
func MetricNames() []string {
	return append([]string(nil), metricNames...)
}

// SelectView maps a selector entry to the aggregate and color settings of its map.
// The color range is fixed per map and independent of the data.
func SelectView(metricName string, set domain.AggregateSet) (domain.ViewSpec, error) {
	style, ok := viewStyles[metricName]
	if !ok {
		return domain.ViewSpec{}, &domain.UnknownMetricError{Name: metricName}
	}

	agg, _ := set.ByMetric(style.field)

	return domain.ViewSpec{
		MetricName: metricName,
		Aggregate:  agg,
		ColorField: style.field,
		ColorScale: style.colorScale,
		ColorRange: style.colorRange,
	}, nil
}
