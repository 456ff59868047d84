package tui

import (
	"context"
	"errors"
	"fmt"

	"itinctl/pkg/itinerary"
	"itinctl/pkg/planner"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Example is a ready-made departure/destination pair
type Example struct {
	Depart      string
	Destination string
}

// Examples are quick Bordeaux trips offered at the top of the plan form
var Examples = []Example{
	{Depart: "Gare Saint-Jean, Bordeaux", Destination: "Place de la Victoire, Bordeaux"},
	{Depart: "Place de la Bourse, Bordeaux", Destination: "Cité du Vin, Bordeaux"},
	{Depart: "Université de Bordeaux", Destination: "Grand Théâtre, Bordeaux"},
}

var modeOptions = []huh.Option[itinerary.Mode]{
	huh.NewOption("⚡ Optimal", itinerary.ModeOptimal),
	huh.NewOption("🚌 Public transport", itinerary.ModeTransport),
	huh.NewOption("🚗 Car", itinerary.ModeCar),
	huh.NewOption("🚲 Bike", itinerary.ModeBike),
	huh.NewOption("🚶 Walk", itinerary.ModeWalk),
}

const customExample = -1

// RunPlanTUI asks for a trip, submits it and prints the result until the user stops.
func RunPlanTUI(ctx context.Context, s *Session) error {
	for {
		var depart, destination string
		example := customExample
		mode := s.DefaultMode()

		exampleOptions := []huh.Option[int]{huh.NewOption("✏️ Enter my own trip", customExample)}
		for i, ex := range Examples {
			exampleOptions = append(exampleOptions, huh.NewOption(fmt.Sprintf("%s → %s", ex.Depart, ex.Destination), i))
		}

		pick := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("Where are you going?").
					Description(s.Screen.StatusLine()).
					Options(exampleOptions...).
					Value(&example),
			),
		).WithTheme(GetTheme())

		if err := pick.Run(); err != nil {
			return err
		}

		if example != customExample {
			depart, destination = Examples[example].Depart, Examples[example].Destination
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Departure").
					Placeholder("e.g. Gare Saint-Jean, Bordeaux").
					Value(&depart),
				huh.NewInput().
					Title("Destination").
					Placeholder("e.g. Place de la Victoire, Bordeaux").
					Value(&destination),
				huh.NewSelect[itinerary.Mode]().
					Title("Travel mode").
					Options(modeOptions...).
					Value(&mode),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			return err
		}

		if err := Submit(ctx, s, depart, destination, mode); errors.Is(err, planner.ErrBusy) {
			return err
		}
		fmt.Println(s.Screen.Draw())
		fmt.Println()

		again := true
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Plan another trip?").
					Value(&again),
			),
		).WithTheme(GetTheme())

		if err := confirm.Run(); err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// Submit runs one submission behind a spinner showing the busy label.
// Failures are already shown on the screen; the error is returned for callers that need it.
func Submit(ctx context.Context, s *Session, depart, destination string, mode itinerary.Mode) error {
	var err error

	_ = spinner.New().
		Title(BusyLabel).
		Action(func() {
			err = s.Controller.SubmitForm(ctx, depart, destination, mode)
		}).
		Run()

	return err
}
