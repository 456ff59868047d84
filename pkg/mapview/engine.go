package mapview

import (
	"github.com/paulmach/orb"
)

// Layer identifies one independently clearable group of map graphics
type Layer int

const (
	RouteLayer Layer = iota
	MarkerLayer
)

func (l Layer) String() string {
	if l == RouteLayer {
		return "route"
	}
	return "markers"
}

// LatLng is a position in drawing order (latitude first)
type LatLng struct {
	Lat float64
	Lng float64
}

// LineStyle describes how the route polyline is stroked
type LineStyle struct {
	Color   string
	Weight  int
	Opacity float64
}

// MarkerStyle selects the tint and glyph of a marker. Symbol is the
// single-cell fallback used by character canvases.
type MarkerStyle struct {
	Color  string
	Glyph  string
	Symbol rune
}

var (
	RouteStyle = LineStyle{Color: "#2563eb", Weight: 5, Opacity: 0.7}
	StartStyle = MarkerStyle{Color: "#10b981", Glyph: "🚩", Symbol: 'S'}
	EndStyle   = MarkerStyle{Color: "#ef4444", Glyph: "🎯", Symbol: 'E'}
)

// BusStyle returns the marker style for a bus tinted with its route colour
func BusStyle(color string) MarkerStyle {
	if color == "" {
		color = "#0066CC"
	}
	return MarkerStyle{Color: color, Glyph: "🚌", Symbol: 'B'}
}

// Engine is the rendering capability behind a Surface
type Engine interface {
	// Available reports why the engine cannot draw, or nil.
	Available() error
	SetView(center LatLng, zoom int)
	DrawPolyline(layer Layer, path []LatLng, style LineStyle)
	DrawMarker(layer Layer, pos LatLng, style MarkerStyle, popup string)
	ClearLayer(layer Layer)
	// FitBounds frames bounds (X = longitude, Y = latitude) with padding pixels of margin.
	FitBounds(bounds orb.Bound, padding int)
}
