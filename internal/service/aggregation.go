package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/swissrenewables/backend/internal/domain"
)

// Aggregate sums metric per canton name. Every distinct non-empty canton name
// of the table gets exactly one entry; absent cantons are not zero-filled.
// Sums are exact decimals converted to float64 once, so the result does not
// depend on row order.
func Aggregate(table *domain.PlantTable, metric domain.Metric) domain.CantonAggregate {
	sums := make(map[string]decimal.Decimal)
	for _, r := range table.Records {
		if r.CantonName == "" {
			continue
		}
		sums[r.CantonName] = addMeasurement(sums[r.CantonName], r.Value(metric))
	}

	values := make(map[string]float64, len(sums))
	for canton, total := range sums {
		values[canton] = total.InexactFloat64()
	}

	return domain.CantonAggregate{Metric: metric, Values: values}
}

// AggregateCombined sums all three metrics per canton name in one pass
func AggregateCombined(table *domain.PlantTable) domain.CombinedAggregate {
	type totals struct {
		capacity, production, tariff decimal.Decimal
	}

	sums := make(map[string]*totals)
	for _, r := range table.Records {
		if r.CantonName == "" {
			continue
		}
		t, ok := sums[r.CantonName]
		if !ok {
			t = &totals{}
			sums[r.CantonName] = t
		}
		t.capacity = addMeasurement(t.capacity, r.ElectricalCapacity)
		t.production = addMeasurement(t.production, r.Production)
		t.tariff = addMeasurement(t.tariff, r.Tariff)
	}

	rows := make(map[string]domain.CantonTotals, len(sums))
	for canton, t := range sums {
		rows[canton] = domain.CantonTotals{
			ElectricalCapacity: t.capacity.InexactFloat64(),
			Production:         t.production.InexactFloat64(),
			Tariff:             t.tariff.InexactFloat64(),
		}
	}

	return domain.CombinedAggregate{Rows: rows}
}

// AggregateAll derives every canton aggregate of table
func AggregateAll(table *domain.PlantTable) domain.AggregateSet {
	return domain.AggregateSet{
		ElectricalCapacity: Aggregate(table, domain.MetricElectricalCapacity),
		Production:         Aggregate(table, domain.MetricProduction),
		Tariff:             Aggregate(table, domain.MetricTariff),
		Combined:           AggregateCombined(table),
	}
}

// addMeasurement adds v to sum. NaN is a missing value and infinities have no
// decimal form; both count as zero.
func addMeasurement(sum decimal.Decimal, v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sum
	}
	return sum.Add(decimal.NewFromFloat(v))
}
