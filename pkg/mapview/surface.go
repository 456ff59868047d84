package mapview

import (
	"errors"
	"fmt"
	"sync"

	"itinctl/pkg/itinerary"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// DefaultCenter is the Bordeaux city centre
var DefaultCenter = LatLng{Lat: 44.8378, Lng: -0.5792}

const DefaultZoom = 13

// ErrNoEngine is returned when a Surface is created without a rendering engine
var ErrNoEngine = errors.New("map rendering engine unavailable")

// Polyline is a drawn route line
type Polyline struct {
	Path  []LatLng
	Style LineStyle
}

// Marker is a drawn point with its popup text
type Marker struct {
	Position LatLng
	Style    MarkerStyle
	Popup    string
}

// Snapshot is a read-only copy of both layers and the viewport
type Snapshot struct {
	Lines   []Polyline
	Markers []Marker
	Center  LatLng
	Zoom    int
	Bounds  orb.Bound
	Fitted  bool
}

// Surface owns the viewport and the route and marker layers. It is the only
// writer of either layer. Callers must Clear before redrawing.
type Surface struct {
	engine Engine
	logger *zap.Logger

	mu      sync.Mutex
	center  LatLng
	zoom    int
	bounds  orb.Bound
	fitted  bool
	lines   []Polyline
	markers []Marker
}

// New initialises the viewport on engine. It fails if the engine is missing or
// reports itself unavailable; this is a startup error and is not retried.
func New(engine Engine, center LatLng, zoom int, logger *zap.Logger) (*Surface, error) {
	if engine == nil {
		return nil, ErrNoEngine
	}
	if err := engine.Available(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoEngine, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine.SetView(center, zoom)

	return &Surface{
		engine: engine,
		logger: logger,
		center: center,
		zoom:   zoom,
	}, nil
}

// Clear removes every route line and marker.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.ClearLayer(RouteLayer)
	s.engine.ClearLayer(MarkerLayer)
	s.lines = nil
	s.markers = nil
}

// DrawRoute draws one connected line through coords in order and returns its bounds.
// An empty sequence draws nothing and returns false.
func (s *Surface) DrawRoute(coords []itinerary.Coordinate) (orb.Bound, bool) {
	if len(coords) == 0 {
		s.logger.Warn("no route coordinates to draw")
		return orb.Bound{}, false
	}

	line := make(orb.LineString, 0, len(coords))
	path := make([]LatLng, 0, len(coords))
	for _, c := range coords {
		line = append(line, c.Point())
		path = append(path, LatLng{Lat: c.Lat(), Lng: c.Lon()})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.DrawPolyline(RouteLayer, path, RouteStyle)
	s.lines = append(s.lines, Polyline{Path: path, Style: RouteStyle})

	return line.Bound(), true
}

// FitToBounds moves the viewport so bounds are visible with padding pixels of margin.
func (s *Surface) FitToBounds(bounds orb.Bound, padding int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.FitBounds(bounds, padding)
	s.bounds = bounds
	s.fitted = true
	center := bounds.Center()
	s.center = LatLng{Lat: center.Lat(), Lng: center.Lon()}
}

// AddMarker places one labelled point on the marker layer.
func (s *Surface) AddMarker(pos LatLng, style MarkerStyle, popup string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.DrawMarker(MarkerLayer, pos, style, popup)
	s.markers = append(s.markers, Marker{Position: pos, Style: style, Popup: popup})
}

func (s *Surface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Lines:   append([]Polyline(nil), s.lines...),
		Markers: append([]Marker(nil), s.markers...),
		Center:  s.center,
		Zoom:    s.zoom,
		Bounds:  s.bounds,
		Fitted:  s.fitted,
	}
}
