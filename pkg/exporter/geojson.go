package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"itinctl/pkg/mapview"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"
)

// Feature kinds written to the "kind" property
const (
	KindRoute  = "route"
	KindMarker = "marker"
)

// FeatureCollection converts both map layers into GeoJSON. Coordinates go back
// to [lon, lat] order. Each marker keeps its popup text and style.
func FeatureCollection(snap mapview.Snapshot) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, line := range snap.Lines {
		ls := make(orb.LineString, 0, len(line.Path))
		for _, p := range line.Path {
			ls = append(ls, orb.Point{p.Lng, p.Lat})
		}
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = KindRoute
		f.Properties["stroke"] = line.Style.Color
		f.Properties["stroke-width"] = line.Style.Weight
		f.Properties["stroke-opacity"] = line.Style.Opacity
		f.Properties["polyline"] = EncodePolyline(line.Path)
		fc.Append(f)
	}

	for _, m := range snap.Markers {
		f := geojson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
		f.Properties["kind"] = KindMarker
		f.Properties["marker-color"] = m.Style.Color
		f.Properties["glyph"] = m.Style.Glyph
		f.Properties["popup"] = m.Popup
		fc.Append(f)
	}

	if snap.Fitted {
		fc.BBox = geojson.NewBBox(snap.Bounds)
	}

	return fc
}

// EncodePolyline returns path in the encoded polyline format (precision 5)
func EncodePolyline(path []mapview.LatLng) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}

// GenerateGeoJSON writes the map layers of snap as an indented FeatureCollection
func GenerateGeoJSON(snap mapview.Snapshot, w io.Writer) error {
	if len(snap.Lines) == 0 && len(snap.Markers) == 0 {
		return fmt.Errorf("nothing drawn on the map to export")
	}

	data, err := json.MarshalIndent(FeatureCollection(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
