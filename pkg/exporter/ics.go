package exporter

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"itinctl/pkg/itinerary"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TripEvent describes the calendar entry written for one itinerary
type TripEvent struct {
	Result *itinerary.Result
	Mode   itinerary.Mode
	// Start is the planned departure. The end is Start plus the itinerary duration.
	Start time.Time
}

// GenerateICS writes a single VEVENT for the trip to w
func GenerateICS(trip TripEvent, w io.Writer) error {
	if trip.Result == nil {
		return fmt.Errorf("no itinerary to export")
	}
	r := trip.Result

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//itinctl//Itinerary Export//EN")

	minutes := int(math.Round(r.DurationMin))
	start := trip.Start.UTC()
	end := start.Add(time.Duration(minutes) * time.Minute)
	now := time.Now()

	event := cal.AddEvent(uuid.NewString() + "@itinctl")
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetModifiedAt(now)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s → %s", r.Depart, r.Destination))
	event.SetLocation(r.Depart)
	event.SetDescription(describe(trip))

	return cal.SerializeTo(w)
}

func describe(trip TripEvent) string {
	r := trip.Result
	mode := trip.Mode
	if mode == "" {
		mode = itinerary.ModeOptimal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", cases.Title(language.French).String(string(mode)))
	fmt.Fprintf(&b, "Distance: %.2f km\n", r.DistanceKm)
	fmt.Fprintf(&b, "Duration: %d min\n", int(math.Round(r.DurationMin)))
	fmt.Fprintf(&b, "Urban score: %v\n", r.UrbanScore)
	fmt.Fprintf(&b, "CO2: %.2f kg", r.CO2Kg)
	if n := len(r.RouteCoords); n > 0 {
		first, last := r.RouteCoords[0], r.RouteCoords[n-1]
		fmt.Fprintf(&b, "\nFrom: %.5f,%.5f\nTo: %.5f,%.5f", first.Lat(), first.Lon(), last.Lat(), last.Lon())
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "\n- %s", rec)
	}
	return b.String()
}
