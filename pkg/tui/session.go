package tui

import (
	"context"
	"fmt"
	"sync"

	"itinctl/pkg/config"
	"itinctl/pkg/health"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/mapview"
	"itinctl/pkg/planner"
	"itinctl/pkg/render"

	"go.uber.org/zap"
)

// Default canvas size in terminal cells
const (
	MapWidth  = 72
	MapHeight = 20
)

// Session wires one backend client to a map, a screen and a controller.
// The CLI commands and the interactive menu share it.
type Session struct {
	Config     *config.AppConfig
	Logger     *zap.Logger
	Client     *itinerary.Client
	Canvas     *mapview.Canvas
	Surface    *mapview.Surface
	Screen     *Screen
	Controller *planner.Controller
	Monitor    *health.Monitor

	results *resultCapture
}

// resultCapture remembers the last result handed to the renderer
type resultCapture struct {
	next planner.Renderer

	mu   sync.Mutex
	last *itinerary.Result
}

func (c *resultCapture) Render(r *itinerary.Result) error {
	c.mu.Lock()
	c.last = r
	c.mu.Unlock()
	return c.next.Render(r)
}

// NewSession builds every component from cfg. It fails only when the map cannot be initialised.
func NewSession(cfg *config.AppConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := itinerary.NewClient(cfg.BackendURL, cfg.RequestTimeout, logger.Named("client"))

	canvas := mapview.NewCanvas(MapWidth, MapHeight)
	surface, err := mapview.New(canvas, mapview.DefaultCenter, mapview.DefaultZoom, logger.Named("map"))
	if err != nil {
		return nil, fmt.Errorf("could not initialise map: %w", err)
	}

	screen := NewScreen(canvas, cfg.AccentColor)
	results := &resultCapture{next: render.New(surface, screen, logger.Named("render"))}

	controller := planner.New(client, results, screen, planner.Options{
		ErrorHideDelay: cfg.ErrorHideDelay,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger.Named("planner"),
	})

	monitor := health.NewMonitor(client, screen, cfg.HealthInterval, logger.Named("health"))

	return &Session{
		Config:     cfg,
		Logger:     logger,
		Client:     client,
		Canvas:     canvas,
		Surface:    surface,
		Screen:     screen,
		Controller: controller,
		Monitor:    monitor,
		results:    results,
	}, nil
}

// StartHealth runs the monitor in the background until ctx is cancelled.
func (s *Session) StartHealth(ctx context.Context) {
	go s.Monitor.Run(ctx)
}

// DefaultMode returns the configured mode, falling back to optimal when the config holds an unknown value.
func (s *Session) DefaultMode() itinerary.Mode {
	mode, err := planner.ValidateMode(itinerary.Mode(s.Config.DefaultMode))
	if err != nil {
		s.Logger.Warn("ignoring configured default mode", zap.String("mode", s.Config.DefaultMode))
		return itinerary.ModeOptimal
	}
	return mode
}

// LastResult returns the most recent successful itinerary, nil before the first one.
func (s *Session) LastResult() *itinerary.Result {
	s.results.mu.Lock()
	defer s.results.mu.Unlock()
	return s.results.last
}
