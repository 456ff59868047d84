package tui

import (
	"fmt"
	"strings"

	"itinctl/pkg/health"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/mapview"
	"itinctl/pkg/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	onlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	onTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Screen is the terminal Binding. Slot updates land on the embedded Recorder
// and Draw turns the current slots plus the map canvas into printable text.
type Screen struct {
	*ui.Recorder
	canvas *mapview.Canvas
	accent lipgloss.Style
}

func NewScreen(canvas *mapview.Canvas, accentColor string) *Screen {
	return &Screen{
		Recorder: ui.NewRecorder(),
		canvas:   canvas,
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)).Bold(true),
	}
}

// StatusLine renders the backend indicator
func (s *Screen) StatusLine() string {
	if s.Snapshot().Status == health.Online {
		return onlineStyle.Render("● Online")
	}
	return offlineStyle.Render("● Offline")
}

// Submit control labels
const (
	IdleLabel = "Find itinerary"
	BusyLabel = "Computing itinerary..."
)

// SubmitLabel is the text of the submit control for the current busy state
func (s *Screen) SubmitLabel() string {
	if s.Snapshot().Loading {
		return BusyLabel
	}
	return IdleLabel
}

// Draw renders every visible panel. Hidden panels produce no output.
func (s *Screen) Draw() string {
	v := s.Snapshot()

	var sections []string
	sections = append(sections, s.StatusLine())

	if v.ErrorVisible {
		sections = append(sections, errorStyle.Render("❌ "+v.ErrorMessage))
	}

	if v.ResultsVisible {
		sections = append(sections, s.drawStats(v.Stats))
		if s.canvas != nil {
			sections = append(sections, panelStyle.Render(s.canvas.Render()))
			if legend := s.canvas.Legend(); len(legend) > 0 {
				sections = append(sections, strings.Join(legend, "\n"))
			}
		}
	}

	if v.RecsVisible {
		var b strings.Builder
		b.WriteString(s.accent.Render("💡 Recommendations"))
		for _, rec := range v.Recommendations {
			b.WriteString("\n  • " + rec)
		}
		sections = append(sections, b.String())
	}

	if v.BusesVisible {
		var b strings.Builder
		b.WriteString(s.accent.Render("🚌 Buses nearby"))
		for _, row := range v.Buses {
			badge := onTimeStyle.Render(row.Badge.Text)
			if !row.Badge.OnTime {
				badge = lateStyle.Render(row.Badge.Text)
			}
			fmt.Fprintf(&b, "\n  %s %s  %d/%d  %s km/h  %s",
				valueStyle.Render(row.ID), row.RouteName, row.Passengers, itinerary.BusCapacity, row.Speed, badge)
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}

func (s *Screen) drawStats(st ui.Stats) string {
	line := func(label, value, unit string) string {
		return labelStyle.Render(label+": ") + valueStyle.Render(value) + " " + unit
	}
	return panelStyle.Render(strings.Join([]string{
		line("Distance", st.Distance, "km"),
		line("Duration", st.Duration, "min"),
		line("Urban score", st.UrbanScore, "/100"),
		line("CO2", st.CO2, "kg"),
	}, "\n"))
}
