package service

import (
	"github.com/swissrenewables/backend/internal/domain"
)

// Scatter marker settings
const (
	scatterSymbol   = "hexagon"
	scatterSizeRef  = 2.5
	scatterSizeMode = "diameter"
)

var scatterLayout = domain.ScatterLayout{
	Title:      "Renewable Power Plants Production vs Tariff in Swiss (2016)",
	XAxisTitle: "Tariff for 2016 (CHF)",
	YAxisTitle: "Yearly Production (MWh)",
}

// BuildScatter makes one production vs tariff point per canton, sized by
// installed capacity, in order of first appearance in table
func BuildScatter(table *domain.PlantTable, combined domain.CombinedAggregate) domain.ScatterData {
	cantons := table.CantonNames()
	traces := make([]domain.ScatterTrace, 0, len(cantons))
	for _, canton := range cantons {
		totals, ok := combined.Rows[canton]
		if !ok {
			continue
		}
		traces = append(traces, domain.ScatterTrace{
			Name: canton,
			X:    totals.Tariff,
			Y:    totals.Production,
			Text: canton,
			Marker: domain.ScatterMarker{
				Size:     totals.ElectricalCapacity,
				Symbol:   scatterSymbol,
				SizeRef:  scatterSizeRef,
				SizeMode: scatterSizeMode,
			},
		})
	}

	return domain.ScatterData{
		Traces: traces,
		Layout: scatterLayout,
	}
}
