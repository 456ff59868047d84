package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itinctl/pkg/apperror"
)

func TestClient_Plan_Success(t *testing.T) {
	// Mock JSON response for the Bordeaux example itinerary
	mockJSON := `{
		"success": true,
		"distance": 3.2,
		"duration": 12,
		"urban_score": 78,
		"co2_emissions": 0.45,
		"route_coords": [[-0.5816, 44.8259], [-0.5792, 44.8378]],
		"depart": "Gare Saint-Jean, Bordeaux",
		"destination": "Place de la Victoire, Bordeaux",
		"buses": []
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/itineraire" {
			t.Errorf("expected path /api/itineraire, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}

		var body Request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("could not decode request body: %v", err)
		}
		if body.Depart != "Gare Saint-Jean, Bordeaux" || body.Mode != ModeOptimal {
			t.Errorf("unexpected request body: %+v", body)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil)

	result, err := client.Plan(context.Background(), Request{
		Depart:      "Gare Saint-Jean, Bordeaux",
		Destination: "Place de la Victoire, Bordeaux",
		Mode:        ModeOptimal,
	})
	if err != nil {
		t.Fatalf("unexpected error planning mocked itinerary: %v", err)
	}

	if len(result.RouteCoords) != 2 {
		t.Fatalf("expected 2 route coordinates, got %d", len(result.RouteCoords))
	}
	if result.RouteCoords[0].Lon() != -0.5816 || result.RouteCoords[0].Lat() != 44.8259 {
		t.Errorf("coordinates not decoded as [lon, lat]: %v", result.RouteCoords[0])
	}
	if result.DistanceKm != 3.2 || result.CO2Kg != 0.45 {
		t.Errorf("unexpected stats: %+v", result)
	}
	if len(result.Buses) != 0 {
		t.Errorf("expected no buses, got %d", len(result.Buses))
	}
}

func TestClient_Plan_Failures(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		kind     apperror.Kind
		code     string
		userText string
	}{
		{"backend error message", http.StatusOK, `{"success": false, "error": "Impossible de géocoder: nulle part"}`,
			apperror.Application, apperror.CodeBackendFailure, "Impossible de géocoder: nulle part"},
		{"success false without message", http.StatusOK, `{"success": false}`,
			apperror.Application, apperror.CodeBackendFailure, apperror.MsgRouteFailed},
		{"500 with no body", http.StatusInternalServerError, ``,
			apperror.Application, apperror.CodeBadStatus, apperror.MsgRouteFailed},
		{"400 with error body", http.StatusBadRequest, `{"error": "Départ et destination requis"}`,
			apperror.Application, apperror.CodeBadStatus, "Départ et destination requis"},
		{"malformed JSON", http.StatusOK, `{"success": tru`,
			apperror.Transport, apperror.CodeMalformedBody, apperror.MsgConnectionError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second, nil)
			_, err := client.Plan(context.Background(), Request{Depart: "a", Destination: "b"})
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *apperror.AppError, got %T", err)
			}
			if appErr.Kind != tc.kind || appErr.Code != tc.code {
				t.Errorf("expected %s/%s, got %s/%s", tc.kind, tc.code, appErr.Kind, appErr.Code)
			}
			if got := apperror.UserMessage(err); got != tc.userText {
				t.Errorf("expected user message %q, got %q", tc.userText, got)
			}
		})
	}
}

func TestClient_Plan_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, nil)
	_, err := client.Plan(context.Background(), Request{Depart: "a", Destination: "b"})

	if kind, ok := apperror.KindOf(err); !ok || kind != apperror.Transport {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestClient_Plan_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond, nil)
	_, err := client.Plan(context.Background(), Request{Depart: "a", Destination: "b"})

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClient_FetchHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected path /health, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "healthy", "service": "worldwide-transport-api"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second, nil)
	status, err := client.FetchHealth(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "healthy" {
		t.Errorf("expected healthy, got %q", status)
	}
}

func TestClient_FetchHealth_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	if _, err := client.FetchHealth(context.Background()); err == nil {
		t.Fatalf("expected error for 503 response")
	}
}
