package mapview

import (
	"errors"
	"testing"

	"itinctl/pkg/itinerary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var bordeauxRoute = []itinerary.Coordinate{
	{-0.5816, 44.8259},
	{-0.5800, 44.8300},
	{-0.5792, 44.8378},
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(nil, DefaultCenter, DefaultZoom, nil)
	assert.ErrorIs(t, err, ErrNoEngine)

	rec := NewRecorder()
	rec.Unavailable = errors.New("no display")
	_, err = New(rec, DefaultCenter, DefaultZoom, nil)
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestNew_SetsInitialView(t *testing.T) {
	rec := NewRecorder()
	s, err := New(rec, DefaultCenter, DefaultZoom, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultCenter, rec.Center)
	assert.Equal(t, 13, rec.Zoom)
	assert.Equal(t, DefaultCenter, s.Snapshot().Center)
}

func TestSurface_DrawRoute_ReordersToLatLng(t *testing.T) {
	s, err := New(NewRecorder(), DefaultCenter, DefaultZoom, nil)
	require.NoError(t, err)

	bounds, ok := s.DrawRoute(bordeauxRoute)
	require.True(t, ok)

	snap := s.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, LatLng{Lat: 44.8259, Lng: -0.5816}, snap.Lines[0].Path[0])
	assert.Equal(t, LatLng{Lat: 44.8378, Lng: -0.5792}, snap.Lines[0].Path[2])

	// Bounds stay in orb order: X = longitude, Y = latitude
	assert.InDelta(t, -0.5816, bounds.Min.X(), 1e-9)
	assert.InDelta(t, 44.8378, bounds.Max.Y(), 1e-9)
}

func TestSurface_DrawRoute_EmptyIsLoggedNoOp(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := NewRecorder()
	s, err := New(rec, DefaultCenter, DefaultZoom, zap.New(core))
	require.NoError(t, err)

	_, ok := s.DrawRoute(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, rec.Lines())
	assert.Equal(t, 1, logs.FilterMessage("no route coordinates to draw").Len())
}

func TestSurface_ClearRemovesBothLayers(t *testing.T) {
	rec := NewRecorder()
	s, err := New(rec, DefaultCenter, DefaultZoom, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		s.Clear()
		bounds, ok := s.DrawRoute(bordeauxRoute)
		require.True(t, ok)
		s.FitToBounds(bounds, 50)
		s.AddMarker(LatLng{Lat: 44.8259, Lng: -0.5816}, StartStyle, "start")
		s.AddMarker(LatLng{Lat: 44.8378, Lng: -0.5792}, EndStyle, "end")
	}

	assert.Equal(t, 1, rec.Lines())
	assert.Equal(t, 2, rec.Markers())
	assert.Equal(t, 50, rec.Padding)

	snap := s.Snapshot()
	assert.Len(t, snap.Lines, 1)
	assert.Len(t, snap.Markers, 2)
	assert.True(t, snap.Fitted)

	s.Clear()
	assert.Equal(t, 0, rec.Lines())
	assert.Equal(t, 0, rec.Markers())
}

func TestCanvas_RendersRouteAndMarkers(t *testing.T) {
	canvas := NewCanvas(40, 12)
	s, err := New(canvas, DefaultCenter, DefaultZoom, nil)
	require.NoError(t, err)

	bounds, ok := s.DrawRoute(bordeauxRoute)
	require.True(t, ok)
	s.FitToBounds(bounds, 16)
	s.AddMarker(LatLng{Lat: 44.8259, Lng: -0.5816}, StartStyle, "Departure\nGare Saint-Jean")
	s.AddMarker(LatLng{Lat: 44.8378, Lng: -0.5792}, EndStyle, "Destination\nPlace de la Victoire")

	view := canvas.View()
	assert.True(t, view.Contains(bounds.Min))
	assert.True(t, view.Contains(bounds.Max))

	counts := map[rune]int{}
	for _, row := range canvas.Grid() {
		for _, cell := range row {
			counts[cell.Rune]++
		}
	}
	assert.Equal(t, 1, counts['S'])
	assert.Equal(t, 1, counts['E'])
	assert.Greater(t, counts[routeRune], 0)

	legend := canvas.Legend()
	require.Len(t, legend, 2)
	assert.Equal(t, "S Departure | Gare Saint-Jean", legend[0])

	s.Clear()
	for _, row := range canvas.Grid() {
		for _, cell := range row {
			assert.Equal(t, emptyRune, cell.Rune)
		}
	}
}

func TestCanvas_TooSmallIsUnavailable(t *testing.T) {
	_, err := New(NewCanvas(5, 2), DefaultCenter, DefaultZoom, nil)
	assert.ErrorIs(t, err, ErrNoEngine)
}
