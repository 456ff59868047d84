package ui

import "fmt"

// State is the visible phase of the plan form. Exactly one is active.
type State int

const (
	Idle State = iota
	Busy
	ShowingResult
	ShowingError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Busy:
		return "busy"
	case ShowingResult:
		return "showing-result"
	case ShowingError:
		return "showing-error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives a State change
type Event int

const (
	EventSubmit Event = iota
	EventSuccess
	EventFailure
	EventInvalid
	EventErrorExpired
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventSuccess:
		return "success"
	case EventFailure:
		return "failure"
	case EventInvalid:
		return "invalid"
	case EventErrorExpired:
		return "error-expired"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Transition returns the state reached from s on e, or an error if e is not
// allowed in s. Busy accepts only the outcome of its request.
func Transition(s State, e Event) (State, error) {
	switch e {
	case EventSubmit:
		if s != Busy {
			return Busy, nil
		}
	case EventInvalid:
		if s != Busy {
			return ShowingError, nil
		}
	case EventSuccess:
		if s == Busy {
			return ShowingResult, nil
		}
	case EventFailure:
		if s == Busy {
			return ShowingError, nil
		}
	case EventErrorExpired:
		if s == ShowingError {
			return Idle, nil
		}
	}
	return s, fmt.Errorf("invalid transition: %s on %s", s, e)
}
