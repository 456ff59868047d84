package health

import (
	"context"
	"sync"
	"time"

	"itinctl/pkg/metrics"

	"go.uber.org/zap"
)

// DefaultInterval is the period between liveness probes
const DefaultInterval = 30 * time.Second

const healthyMarker = "healthy"

// Status is the backend connectivity as of the last completed probe
type Status int

const (
	Offline Status = iota
	Online
)

func (s Status) String() string {
	if s == Online {
		return "online"
	}
	return "offline"
}

// Indicator is the status control updated after every probe
type Indicator interface {
	SetStatus(Status)
}

// Prober fetches the raw status string from the liveness endpoint
type Prober interface {
	FetchHealth(ctx context.Context) (string, error)
}

// Monitor polls the backend and publishes Online/Offline.
// Probes may overlap; the last one to complete wins.
type Monitor struct {
	prober    Prober
	indicator Indicator
	interval  time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	status  Status
	checked time.Time
}

func NewMonitor(prober Prober, indicator Indicator, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		prober:    prober,
		indicator: indicator,
		interval:  interval,
		logger:    logger,
		status:    Offline,
	}
}

// Probe runs one liveness check and overwrites the published status.
func (m *Monitor) Probe(ctx context.Context) Status {
	raw, err := m.prober.FetchHealth(ctx)

	status := Offline
	if err != nil {
		m.logger.Debug("health probe failed", zap.Error(err))
	} else if raw == healthyMarker {
		status = Online
	} else {
		m.logger.Debug("backend reported unhealthy", zap.String("status", raw))
	}

	m.mu.Lock()
	m.status = status
	m.checked = time.Now()
	if m.indicator != nil {
		m.indicator.SetStatus(status)
	}
	m.mu.Unlock()

	metrics.HealthProbes.WithLabelValues(status.String()).Inc()
	if status == Online {
		metrics.BackendOnline.Set(1)
	} else {
		metrics.BackendOnline.Set(0)
	}

	return status
}

// Run probes immediately and then on every tick until ctx is cancelled.
// Each probe runs on its own goroutine, so a slow backend never delays the schedule.
func (m *Monitor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()

	spawn := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Probe(ctx)
		}()
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	spawn()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			spawn()
		}
	}
}

// Status returns the outcome of the most recently completed probe
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// LastChecked returns when the most recent probe completed, zero before the first one.
func (m *Monitor) LastChecked() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checked
}
