package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScatter(t *testing.T) {
	table := newTable(t,
		[]string{"VS", "5", "50", "5"},
		[]string{"GE", "1", "100", "10"},
		[]string{"GE", "2", "200", "20"},
		[]string{"", "9", "9", "9"},
	)

	got := BuildScatter(table, AggregateCombined(table))

	require.Len(t, got.Traces, 2)

	t.Run("should keep first appearance order", func(t *testing.T) {
		assert.Equal(t, "Valais", got.Traces[0].Name)
		assert.Equal(t, "Genève", got.Traces[1].Name)
	})

	t.Run("should plot tariff against production sized by capacity", func(t *testing.T) {
		ge := got.Traces[1]
		assert.Equal(t, 30.0, ge.X)
		assert.Equal(t, 300.0, ge.Y)
		assert.Equal(t, "Genève", ge.Text)
		assert.Equal(t, 3.0, ge.Marker.Size)
		assert.Equal(t, "hexagon", ge.Marker.Symbol)
		assert.Equal(t, 2.5, ge.Marker.SizeRef)
		assert.Equal(t, "diameter", ge.Marker.SizeMode)
	})

	t.Run("should carry the plot titles", func(t *testing.T) {
		assert.Equal(t, "Tariff for 2016 (CHF)", got.Layout.XAxisTitle)
		assert.Equal(t, "Yearly Production (MWh)", got.Layout.YAxisTitle)
	})
}

func TestBuildScatterEmpty(t *testing.T) {
	table := newTable(t)

	got := BuildScatter(table, AggregateCombined(table))
	assert.NotNil(t, got.Traces)
	assert.Empty(t, got.Traces)
}
