package ui

// Stats are the pre-formatted summary values of an itinerary
type Stats struct {
	Distance   string
	Duration   string
	UrbanScore string
	CO2        string
}

// Badge is the punctuality tag of a bus row
type Badge struct {
	OnTime bool
	Text   string
}

// BusRow is one line of the bus list panel
type BusRow struct {
	ID         string
	RouteName  string
	Passengers int
	Speed      string
	Badge      Badge
}

// Binding exposes the named slots of the plan screen. Implementations must be
// safe for use from the goroutine that fires the error auto-hide timer.
type Binding interface {
	// SetSubmitBusy disables the submit control and swaps its label to a loading
	// indicator, or restores both.
	SetSubmitBusy(busy bool)

	ShowResults()
	HideResults()
	SetStats(Stats)

	ShowRecommendations([]string)
	HideRecommendations()

	ShowBusList([]BusRow)
	HideBusList()

	ShowError(message string)
	HideError()
}
