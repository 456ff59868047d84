package itinerary

import (
	"github.com/paulmach/orb"
)

// Mode is the travel mode sent to the backend
type Mode string

const (
	ModeOptimal   Mode = "optimal"
	ModeTransport Mode = "transport"
	ModeCar       Mode = "voiture"
	ModeBike      Mode = "velo"
	ModeWalk      Mode = "pieton"
)

// Modes lists every mode the backend understands, default first.
var Modes = []Mode{ModeOptimal, ModeTransport, ModeCar, ModeBike, ModeWalk}

// BusCapacity is the seat count used for passenger load display
const BusCapacity = 50

// Coordinate is a [longitude, latitude] pair as sent by the backend
type Coordinate [2]float64

func (c Coordinate) Lon() float64 { return c[0] }
func (c Coordinate) Lat() float64 { return c[1] }

// Point converts to an orb point (X = longitude, Y = latitude).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c[0], c[1]}
}

// Request is the JSON body POSTed to /api/itineraire
type Request struct {
	Depart      string `json:"depart" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Mode        Mode   `json:"mode" validate:"omitempty,oneof=optimal transport voiture velo pieton"`
}

// Result represents the itinerary returned by /api/itineraire
type Result struct {
	Success         bool          `json:"success"`
	DistanceKm      float64       `json:"distance"`
	DurationMin     float64       `json:"duration"`
	UrbanScore      float64       `json:"urban_score"`
	CO2Kg           float64       `json:"co2_emissions"`
	RouteCoords     []Coordinate  `json:"route_coords"`
	Depart          string        `json:"depart"`
	Destination     string        `json:"destination"`
	Recommendations []string      `json:"recommendations"`
	Buses           []BusPosition `json:"buses"`
	Error           string        `json:"error,omitempty"`
}

// BusPosition is the live position of one bus near the route
type BusPosition struct {
	ID         string  `json:"id"`
	RouteName  string  `json:"route_name"`
	Lat        float64 `json:"lat" validate:"latitude"`
	Lon        float64 `json:"lon" validate:"longitude"`
	SpeedKmh   float64 `json:"speed"`
	Passengers int     `json:"passengers"`
	DelayMin   int     `json:"delay"`
	Color      string  `json:"color"`
}

// OnTime reports whether the bus runs without delay. Early buses count as on time.
func (b BusPosition) OnTime() bool {
	return b.DelayMin <= 0
}

// HealthResponse is the body returned by /health
type HealthResponse struct {
	Status string `json:"status"`
}
