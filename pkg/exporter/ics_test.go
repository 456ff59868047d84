package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"itinctl/pkg/itinerary"
)

func TestGenerateICS(t *testing.T) {
	trip := TripEvent{
		Result: &itinerary.Result{
			Success:         true,
			DistanceKm:      3.2,
			DurationMin:     12,
			UrbanScore:      78,
			CO2Kg:           0.45,
			RouteCoords:     []itinerary.Coordinate{{-0.5816, 44.8259}, {-0.5792, 44.8378}},
			Depart:          "Gare Saint-Jean",
			Destination:     "Place de la Victoire",
			Recommendations: []string{"Take tram C"},
		},
		Mode:  itinerary.ModeBike,
		Start: time.Date(2026, 3, 4, 8, 15, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := GenerateICS(trip, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "SUMMARY:Gare Saint-Jean → Place de la Victoire") {
		t.Errorf("Expected ICS to contain trip summary, got: \n%s", output)
	}

	if !strings.Contains(output, "LOCATION:Gare Saint-Jean") {
		t.Errorf("Expected ICS to contain departure location")
	}

	if !strings.Contains(output, "DTSTART:20260304T081500Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}

	// 12 minutes after departure
	if !strings.Contains(output, "DTEND:20260304T082700Z") {
		t.Errorf("Expected end time shifted by the itinerary duration, got: \n%s", output)
	}

	if !strings.Contains(output, "Mode: Velo") {
		t.Errorf("Expected title-cased travel mode in description, got: \n%s", output)
	}
}

func TestGenerateICS_NoResult(t *testing.T) {
	if err := GenerateICS(TripEvent{}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected an error without an itinerary")
	}
}
