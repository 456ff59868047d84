package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"itinctl/pkg/config"
	"itinctl/pkg/health"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/ui"
)

const bordeauxJSON = `{
	"success": true,
	"distance": 3.2,
	"duration": 12,
	"urban_score": 78,
	"co2_emissions": 0.45,
	"route_coords": [[-0.5816, 44.8259], [-0.5800, 44.8300], [-0.5792, 44.8378]],
	"depart": "Gare Saint-Jean, Bordeaux",
	"destination": "Place de la Victoire, Bordeaux",
	"recommendations": ["Tram C is faster at this hour"],
	"buses": [{"id": "B12", "route_name": "Liane 1", "lat": 44.83, "lon": -0.58, "speed": 22.5, "passengers": 31, "delay": 3, "color": "#ff0000"}]
}`

func testConfig(url string) *config.AppConfig {
	return &config.AppConfig{
		BackendURL:     url,
		DefaultMode:    "optimal",
		AccentColor:    "33",
		RequestTimeout: 2 * time.Second,
		HealthInterval: time.Hour,
		ErrorHideDelay: time.Hour,
	}
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status": "healthy"}`))
		case "/api/itineraire":
			w.Write([]byte(bordeauxJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSession_PlanAndDraw(t *testing.T) {
	server := newBackend(t)

	s, err := NewSession(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := s.Controller.SubmitForm(context.Background(), "Gare Saint-Jean, Bordeaux", "Place de la Victoire, Bordeaux", ""); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if s.Controller.State() != ui.ShowingResult {
		t.Errorf("expected ShowingResult, got %v", s.Controller.State())
	}

	out := s.Screen.Draw()
	for _, want := range []string{"3.20", "12", "78", "0.45", "Tram C is faster at this hour", "B12", "Liane 1", "31/50", "+3 min", "S Departure | Gare Saint-Jean, Bordeaux", "E Destination | Place de la Victoire, Bordeaux"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected screen to contain %q, got:\n%s", want, out)
		}
	}

	snap := s.Surface.Snapshot()
	if len(snap.Markers) != 3 {
		t.Errorf("expected start, end and one bus marker, got %d", len(snap.Markers))
	}
	if s.Screen.SubmitLabel() != IdleLabel {
		t.Errorf("expected the idle label after the request, got %q", s.Screen.SubmitLabel())
	}
}

func TestSession_ValidationErrorOnScreen(t *testing.T) {
	server := newBackend(t)

	s, err := NewSession(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := s.Controller.SubmitForm(context.Background(), "", "Cité du Vin", ""); err == nil {
		t.Fatalf("expected a validation error")
	}

	out := s.Screen.Draw()
	if !strings.Contains(out, "Please fill in both departure and destination") {
		t.Errorf("expected validation message on screen, got:\n%s", out)
	}
	if strings.Contains(out, "Distance") {
		t.Errorf("results panel must stay hidden, got:\n%s", out)
	}
}

func TestSession_HealthIndicator(t *testing.T) {
	server := newBackend(t)

	s, err := NewSession(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if !strings.Contains(s.Screen.StatusLine(), "Offline") {
		t.Errorf("expected Offline before the first probe, got %q", s.Screen.StatusLine())
	}

	if got := s.Monitor.Probe(context.Background()); got != health.Online {
		t.Fatalf("expected Online, got %v", got)
	}
	if !strings.Contains(s.Screen.StatusLine(), "Online") {
		t.Errorf("expected Online indicator, got %q", s.Screen.StatusLine())
	}
}

func TestSession_DefaultMode(t *testing.T) {
	cfg := testConfig("http://localhost:5001")
	cfg.DefaultMode = "velo"

	s, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.DefaultMode() != itinerary.ModeBike {
		t.Errorf("expected velo, got %q", s.DefaultMode())
	}

	s.Config.DefaultMode = "hovercraft"
	if s.DefaultMode() != itinerary.ModeOptimal {
		t.Errorf("expected fallback to optimal, got %q", s.DefaultMode())
	}
}

func TestDescribeConfig(t *testing.T) {
	out := DescribeConfig(testConfig("http://localhost:5001"))
	for _, want := range []string{"Backend URL:      http://localhost:5001", "Default Mode:     optimal", "Log File:         (default)", "Error Hide Delay: 1h0m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestExamplesAreComplete(t *testing.T) {
	if len(Examples) == 0 {
		t.Fatal("expected example trips")
	}
	for _, ex := range Examples {
		if strings.TrimSpace(ex.Depart) == "" || strings.TrimSpace(ex.Destination) == "" {
			t.Errorf("incomplete example: %+v", ex)
		}
	}
}

func TestSession_LastResult(t *testing.T) {
	server := newBackend(t)

	s, err := NewSession(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.LastResult() != nil {
		t.Fatalf("expected no result before the first submission")
	}

	if err := s.Controller.SubmitForm(context.Background(), "a", "b", itinerary.ModeWalk); err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}
	if r := s.LastResult(); r == nil || r.DistanceKm != 3.2 {
		t.Errorf("expected the Bordeaux result, got %+v", r)
	}
}
