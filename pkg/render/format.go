package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"itinctl/pkg/itinerary"
	"itinctl/pkg/ui"
)

const (
	onTimeText  = "✅ on time"
	warningIcon = "⚠️"
)

// FormatStats formats the summary values for display
func FormatStats(r *itinerary.Result) ui.Stats {
	return ui.Stats{
		Distance:   fmt.Sprintf("%.2f", r.DistanceKm),
		Duration:   strconv.FormatFloat(math.Round(r.DurationMin), 'f', 0, 64),
		UrbanScore: formatNumber(r.UrbanScore),
		CO2:        fmt.Sprintf("%.2f", r.CO2Kg),
	}
}

// DelayBadge returns "on time" for delay <= 0 and "+N min" with a warning glyph otherwise.
func DelayBadge(delayMin int) ui.Badge {
	if delayMin <= 0 {
		return ui.Badge{OnTime: true, Text: onTimeText}
	}
	return ui.Badge{OnTime: false, Text: fmt.Sprintf("%s +%d min", warningIcon, delayMin)}
}

// BusRows converts live bus positions into bus list rows, keeping order
func BusRows(buses []itinerary.BusPosition) []ui.BusRow {
	rows := make([]ui.BusRow, 0, len(buses))
	for _, b := range buses {
		rows = append(rows, ui.BusRow{
			ID:         b.ID,
			RouteName:  b.RouteName,
			Passengers: b.Passengers,
			Speed:      formatNumber(b.SpeedKmh),
			Badge:      DelayBadge(b.DelayMin),
		})
	}
	return rows
}

// BusPopup summarises one bus for its map marker
func BusPopup(b itinerary.BusPosition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", b.RouteName)
	fmt.Fprintf(&sb, "ID: %s\n", b.ID)
	fmt.Fprintf(&sb, "Speed: %s km/h\n", formatNumber(b.SpeedKmh))
	fmt.Fprintf(&sb, "Passengers: %d/%d\n", b.Passengers, itinerary.BusCapacity)
	if b.OnTime() {
		sb.WriteString(onTimeText)
	} else {
		fmt.Fprintf(&sb, "%s Delay: %d min", warningIcon, b.DelayMin)
	}
	return sb.String()
}

func startPopup(depart string) string {
	return "Departure\n" + depart
}

func endPopup(destination string) string {
	return "Destination\n" + destination
}

// formatNumber prints v the way it arrived: integers without decimals, others with all significant digits.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
