package service

import (
	"github.com/swissrenewables/backend/internal/domain"
)

// ResolveCantonNames returns a copy of table with canton_name derived from the
// canton code. Codes missing from names keep the raw code as their name.
// The input table is not modified.
func ResolveCantonNames(table *domain.PlantTable, names domain.CantonNameMap) *domain.PlantTable {
	nameIdx := -1
	for i, c := range table.Columns {
		if domain.NormalizeColumn(c) == domain.ColumnCantonName {
			nameIdx = i
			break
		}
	}

	columns := append([]string(nil), table.Columns...)
	if nameIdx < 0 {
		nameIdx = len(columns)
		columns = append(columns, domain.ColumnCantonName)
	}

	records := make([]domain.PlantRecord, len(table.Records))
	for i, r := range table.Records {
		name := r.Canton
		if mapped, ok := names.Lookup(r.Canton); ok {
			name = mapped
		}

		values := make([]string, len(columns))
		copy(values, r.Values)
		values[nameIdx] = name

		r.CantonName = name
		r.Values = values
		records[i] = r
	}

	return &domain.PlantTable{
		Source:  table.Source,
		Columns: columns,
		Records: records,
	}
}

// UnmappedCodes lists distinct canton codes absent from names, in order of first appearance
func UnmappedCodes(table *domain.PlantTable, names domain.CantonNameMap) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, r := range table.Records {
		if _, ok := names.Lookup(r.Canton); ok {
			continue
		}
		if _, ok := seen[r.Canton]; ok {
			continue
		}
		seen[r.Canton] = struct{}{}
		codes = append(codes, r.Canton)
	}
	return codes
}
