package mapview

import (
	"sync"

	"github.com/paulmach/orb"
)

// Recorder is an Engine that only counts what is on each layer.
type Recorder struct {
	mu sync.Mutex

	Unavailable error
	Center      LatLng
	Zoom        int
	Fitted      orb.Bound
	Padding     int
	lines       map[Layer]int
	markers     map[Layer]int
}

func NewRecorder() *Recorder {
	return &Recorder{lines: make(map[Layer]int), markers: make(map[Layer]int)}
}

func (r *Recorder) Available() error { return r.Unavailable }

func (r *Recorder) SetView(center LatLng, zoom int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Center, r.Zoom = center, zoom
}

func (r *Recorder) DrawPolyline(layer Layer, path []LatLng, style LineStyle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[layer]++
}

func (r *Recorder) DrawMarker(layer Layer, pos LatLng, style MarkerStyle, popup string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markers[layer]++
}

func (r *Recorder) ClearLayer(layer Layer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lines, layer)
	delete(r.markers, layer)
}

func (r *Recorder) FitBounds(bounds orb.Bound, padding int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fitted, r.Padding = bounds, padding
}

// Lines returns the number of polylines on every layer
func (r *Recorder) Lines() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.lines {
		n += v
	}
	return n
}

// Markers returns the number of markers on every layer
func (r *Recorder) Markers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, v := range r.markers {
		n += v
	}
	return n
}
