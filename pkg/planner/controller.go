package planner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"itinctl/pkg/apperror"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/metrics"
	"itinctl/pkg/ui"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultErrorHideDelay is how long an error stays on screen
const DefaultErrorHideDelay = 5 * time.Second

// ErrBusy is returned when a submission arrives while another is in flight
var ErrBusy = errors.New("a request is already in flight")

var validate = validator.New()

// Backend computes itineraries
type Backend interface {
	Plan(ctx context.Context, r itinerary.Request) (*itinerary.Result, error)
}

// Renderer displays a successful result
type Renderer interface {
	Render(result *itinerary.Result) error
}

// Timer is a pending scheduled callback
type Timer interface {
	Stop() bool
}

// Input is a validated departure/destination pair
type Input struct {
	Depart      string `validate:"required"`
	Destination string `validate:"required"`
}

// Options tune a Controller. Zero values pick the defaults.
type Options struct {
	ErrorHideDelay time.Duration
	// RequestTimeout bounds one backend call; zero leaves it to the caller's context.
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Controller runs the submit → request → render lifecycle of the plan form.
type Controller struct {
	backend   Backend
	renderer  Renderer
	binding   ui.Binding
	logger    *zap.Logger
	hideDelay time.Duration
	timeout   time.Duration
	afterFunc func(time.Duration, func()) Timer

	mu         sync.Mutex
	state      ui.State
	inFlight   bool
	generation uint64
	hideTimer  Timer
}

func New(backend Backend, renderer Renderer, binding ui.Binding, opts Options) *Controller {
	if opts.ErrorHideDelay <= 0 {
		opts.ErrorHideDelay = DefaultErrorHideDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		backend:   backend,
		renderer:  renderer,
		binding:   binding,
		logger:    opts.Logger,
		hideDelay: opts.ErrorHideDelay,
		timeout:   opts.RequestTimeout,
		afterFunc: func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
		state:     ui.Idle,
	}
}

// Validate trims both fields and requires them to be non-empty.
func Validate(depart, destination string) (Input, error) {
	in := Input{
		Depart:      strings.TrimSpace(depart),
		Destination: strings.TrimSpace(destination),
	}
	if err := validate.Struct(in); err != nil {
		return Input{}, apperror.Wrap(apperror.Validation, apperror.CodeMissingField, apperror.MsgMissingField, err)
	}
	return in, nil
}

// ValidateMode returns the default mode for "" and rejects unknown modes.
func ValidateMode(mode itinerary.Mode) (itinerary.Mode, error) {
	if mode == "" {
		return itinerary.ModeOptimal, nil
	}
	if err := validate.Var(string(mode), "oneof=optimal transport voiture velo pieton"); err != nil {
		return "", apperror.Wrap(apperror.Validation, apperror.CodeInvalidMode, "Unknown travel mode: "+string(mode), err)
	}
	return mode, nil
}

// SubmitForm validates the raw form values and submits them. Validation
// failures are shown on the error panel without any network call.
func (c *Controller) SubmitForm(ctx context.Context, depart, destination string, mode itinerary.Mode) error {
	in, err := Validate(depart, destination)
	if err == nil {
		mode, err = ValidateMode(mode)
	}
	if err != nil {
		c.mu.Lock()
		if c.inFlight {
			c.mu.Unlock()
			return ErrBusy
		}
		c.generation++
		gen := c.generation
		c.transitionLocked(ui.EventInvalid)
		c.mu.Unlock()

		metrics.ItineraryRequests.WithLabelValues("validation").Inc()
		c.showError(gen, err)
		return err
	}
	return c.Submit(ctx, in, mode)
}

// Submit issues one itinerary request for in and renders the outcome.
// The submit control is disabled for the duration and always restored on return.
func (c *Controller) Submit(ctx context.Context, in Input, mode itinerary.Mode) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	c.inFlight = true
	c.generation++
	gen := c.generation
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.transitionLocked(ui.EventSubmit)
	c.mu.Unlock()

	c.binding.SetSubmitBusy(true)
	c.binding.HideResults()
	c.binding.HideError()

	defer func() {
		c.binding.SetSubmitBusy(false)
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if mode == "" {
		mode = itinerary.ModeOptimal
	}

	start := time.Now()
	result, err := c.backend.Plan(ctx, itinerary.Request{
		Depart:      in.Depart,
		Destination: in.Destination,
		Mode:        mode,
	})
	metrics.ItineraryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.mu.Lock()
		c.transitionLocked(ui.EventFailure)
		c.mu.Unlock()

		outcome := "transport"
		if kind, ok := apperror.KindOf(err); ok {
			outcome = kind.String()
		}
		metrics.ItineraryRequests.WithLabelValues(outcome).Inc()

		c.showError(gen, err)
		return err
	}

	metrics.ItineraryRequests.WithLabelValues("success").Inc()

	c.mu.Lock()
	c.transitionLocked(ui.EventSuccess)
	c.mu.Unlock()

	if err := c.renderer.Render(result); err != nil {
		c.logger.Warn("itinerary rendered partially", zap.Error(err))
	}

	return nil
}

// showError displays the user-facing message for err and schedules it to hide.
// The hide only applies while gen is still the latest submission.
func (c *Controller) showError(gen uint64, err error) {
	if kind, ok := apperror.KindOf(err); !ok || kind == apperror.Transport {
		c.logger.Warn("itinerary request failed", zap.Error(err))
	} else {
		c.logger.Info("itinerary request rejected", zap.Error(err))
	}

	c.binding.ShowError(apperror.UserMessage(err))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.hideTimer = c.afterFunc(c.hideDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			return
		}
		c.binding.HideError()
		c.hideTimer = nil
		if c.state == ui.ShowingError {
			c.transitionLocked(ui.EventErrorExpired)
		}
	})
}

func (c *Controller) transitionLocked(e ui.Event) {
	next, err := ui.Transition(c.state, e)
	if err != nil {
		c.logger.Debug("ignored UI transition", zap.Error(err))
		return
	}
	c.state = next
}

// State returns the current UI state
func (c *Controller) State() ui.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the number of submissions seen so far
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
