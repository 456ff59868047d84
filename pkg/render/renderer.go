package render

import (
	"fmt"

	"itinctl/pkg/apperror"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/mapview"
	"itinctl/pkg/metrics"
	"itinctl/pkg/ui"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// FitPadding is the viewport margin, in pixels, around a drawn route
const FitPadding = 50

// Map is the subset of *mapview.Surface the renderer draws through
type Map interface {
	Clear()
	DrawRoute(coords []itinerary.Coordinate) (orb.Bound, bool)
	FitToBounds(bounds orb.Bound, padding int)
	AddMarker(pos mapview.LatLng, style mapview.MarkerStyle, popup string)
}

// Renderer turns an itinerary result into UI slot updates and map draw calls.
// It performs no network access.
type Renderer struct {
	surface  Map
	binding  ui.Binding
	logger   *zap.Logger
	validate *validator.Validate
}

func New(surface Map, binding ui.Binding, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		surface:  surface,
		binding:  binding,
		logger:   logger,
		validate: validator.New(),
	}
}

// Render updates summary, recommendations and bus list, then the map.
// A rendering defect skips the map only; the error is returned for the caller to log.
func (r *Renderer) Render(result *itinerary.Result) error {
	r.RenderSummary(result)
	r.RenderRecommendations(result.Recommendations)
	r.RenderBusList(result.Buses)

	if err := r.RenderMap(result); err != nil {
		metrics.RenderingDefects.Inc()
		return err
	}
	return nil
}

// RenderSummary writes the stats and reveals the results panel.
func (r *Renderer) RenderSummary(result *itinerary.Result) {
	r.binding.SetStats(FormatStats(result))
	r.binding.ShowResults()
}

// RenderRecommendations shows one item per entry, or hides the panel when there are none.
func (r *Renderer) RenderRecommendations(recs []string) {
	if len(recs) == 0 {
		r.binding.HideRecommendations()
		return
	}
	r.binding.ShowRecommendations(recs)
}

// RenderBusList shows one row per bus, or hides the panel when there are none.
func (r *Renderer) RenderBusList(buses []itinerary.BusPosition) {
	if len(buses) == 0 {
		r.binding.HideBusList()
		return
	}
	r.binding.ShowBusList(BusRows(buses))
}

// RenderMap redraws the route, its start and end markers and one marker per bus.
func (r *Renderer) RenderMap(result *itinerary.Result) error {
	r.surface.Clear()

	coords := r.validCoords(result.RouteCoords)
	bounds, ok := r.surface.DrawRoute(coords)
	if !ok {
		return apperror.New(apperror.Rendering, apperror.CodeEmptyRoute,
			fmt.Sprintf("no drawable coordinates (%d received)", len(result.RouteCoords)))
	}
	r.surface.FitToBounds(bounds, FitPadding)

	first, last := coords[0], coords[len(coords)-1]
	r.surface.AddMarker(mapview.LatLng{Lat: first.Lat(), Lng: first.Lon()}, mapview.StartStyle, startPopup(result.Depart))
	r.surface.AddMarker(mapview.LatLng{Lat: last.Lat(), Lng: last.Lon()}, mapview.EndStyle, endPopup(result.Destination))

	for _, bus := range result.Buses {
		if err := r.validate.Struct(bus); err != nil {
			r.logger.Warn("skipping bus with invalid position",
				zap.String("bus_id", bus.ID), zap.Float64("lat", bus.Lat), zap.Float64("lon", bus.Lon))
			continue
		}
		r.surface.AddMarker(mapview.LatLng{Lat: bus.Lat, Lng: bus.Lon}, mapview.BusStyle(bus.Color), BusPopup(bus))
	}

	return nil
}

// validCoords drops points that are not finite or outside geographic range.
func (r *Renderer) validCoords(coords []itinerary.Coordinate) []itinerary.Coordinate {
	valid := make([]itinerary.Coordinate, 0, len(coords))
	for i, c := range coords {
		if r.validate.Var(c.Lat(), "latitude") != nil || r.validate.Var(c.Lon(), "longitude") != nil {
			r.logger.Warn("dropping invalid route coordinate",
				zap.Int("index", i), zap.Float64("lon", c.Lon()), zap.Float64("lat", c.Lat()))
			continue
		}
		valid = append(valid, c)
	}
	return valid
}
