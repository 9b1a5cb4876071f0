package domain

// Map selector entries
const (
	MapInstalledCapacity = "Installed Electrical Capacity"
	MapYearlyProduction  = "Yearly Production"
	MapTariff            = "Tariff"
)

// ViewSpec parameterizes one choropleth rendering
type ViewSpec struct {
	MetricName string          `json:"metric_name"`
	Aggregate  CantonAggregate `json:"-"`
	ColorField Metric          `json:"color_field"`
	ColorScale string          `json:"color_scale"`
	ColorRange [2]float64      `json:"color_range"`
}

// MapLayout holds the fixed map viewport used for every choropleth
type MapLayout struct {
	Style      string   `json:"style"`
	Zoom       float64  `json:"zoom"`
	Center     GeoPoint `json:"center"`
	FeatureKey string   `json:"featureidkey"`
	Margin     [4]int   `json:"margin"` // r, t, l, b
}

// GeoPoint is a WGS84 coordinate
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Switzerland map viewport
const (
	SwissCenterLat = 46.8182
	SwissCenterLon = 8.2275
)

// DefaultMapLayout is the viewport of the canton choropleth
var DefaultMapLayout = MapLayout{
	Style:      "carto-positron",
	Zoom:       6,
	Center:     GeoPoint{Lat: SwissCenterLat, Lon: SwissCenterLon},
	FeatureKey: "properties.kan_name",
}

// ChoroplethData is the payload of one map rendering
type ChoroplethData struct {
	View      ViewSpec  `json:"view"`
	Locations []string  `json:"locations"`
	Values    []float64 `json:"values"`
	Unmatched []string  `json:"unmatched"`
	Layout    MapLayout `json:"layout"`
}

// ScatterMarker describes the marker of one scatter trace
type ScatterMarker struct {
	Size     float64 `json:"size"`
	Symbol   string  `json:"symbol"`
	SizeRef  float64 `json:"sizeref"`
	SizeMode string  `json:"sizemode"`
}

// ScatterTrace is one canton point of the production vs tariff plot
type ScatterTrace struct {
	Name   string        `json:"name"`
	X      float64       `json:"x"` // tariff
	Y      float64       `json:"y"` // production
	Text   string        `json:"text"`
	Marker ScatterMarker `json:"marker"`
}

// ScatterLayout holds the plot titles
type ScatterLayout struct {
	Title      string `json:"title"`
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
}

// ScatterData is the payload of the production vs tariff plot
type ScatterData struct {
	Traces []ScatterTrace `json:"traces"`
	Layout ScatterLayout  `json:"layout"`
}

// DatasetPreview is the head of the resolved plant table
type DatasetPreview struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}
