package ui

import (
	"sync"

	"itinctl/pkg/health"
)

// View is what each slot of the plan screen currently shows
type View struct {
	SubmitDisabled  bool
	Loading         bool
	ResultsVisible  bool
	Stats           Stats
	Recommendations []string
	RecsVisible     bool
	Buses           []BusRow
	BusesVisible    bool
	ErrorVisible    bool
	ErrorMessage    string
	Status          health.Status

	// Calls lists slot updates in order, e.g. "busy", "hide-results", "error".
	Calls []string
}

// Recorder is an in-memory Binding that keeps a View up to date.
// It backs headless runs and tests.
type Recorder struct {
	mu sync.Mutex
	v  View
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(call string) {
	r.v.Calls = append(r.v.Calls, call)
}

func (r *Recorder) SetSubmitBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.SubmitDisabled = busy
	r.v.Loading = busy
	if busy {
		r.record("busy")
	} else {
		r.record("idle")
	}
}

func (r *Recorder) ShowResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.ResultsVisible = true
	r.record("show-results")
}

func (r *Recorder) HideResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.ResultsVisible = false
	r.record("hide-results")
}

func (r *Recorder) SetStats(s Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Stats = s
	r.record("stats")
}

func (r *Recorder) ShowRecommendations(recs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Recommendations = append([]string(nil), recs...)
	r.v.RecsVisible = true
	r.record("show-recommendations")
}

func (r *Recorder) HideRecommendations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Recommendations = nil
	r.v.RecsVisible = false
	r.record("hide-recommendations")
}

func (r *Recorder) ShowBusList(rows []BusRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Buses = append([]BusRow(nil), rows...)
	r.v.BusesVisible = true
	r.record("show-buses")
}

func (r *Recorder) HideBusList() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Buses = nil
	r.v.BusesVisible = false
	r.record("hide-buses")
}

func (r *Recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.ErrorVisible = true
	r.v.ErrorMessage = message
	r.record("error")
}

func (r *Recorder) HideError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.ErrorVisible = false
	r.record("hide-error")
}

func (r *Recorder) SetStatus(s health.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.v.Status = s
}

// Snapshot returns a copy safe to inspect while timers may still fire.
func (r *Recorder) Snapshot() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.v
	v.Recommendations = append([]string(nil), r.v.Recommendations...)
	v.Buses = append([]BusRow(nil), r.v.Buses...)
	v.Calls = append([]string(nil), r.v.Calls...)
	return v
}
