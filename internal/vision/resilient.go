package vision

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
)

// ErrCircuitOpen is returned while the backend is cooling down after
// repeated failures.
var ErrCircuitOpen = errors.New("vision: backend circuit open")

// ErrImageUnsupported is returned when the wrapped backend cannot
// generate images.
var ErrImageUnsupported = errors.New("vision: backend does not generate images")

// State represents the circuit state of a resilient backend.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// BreakerConfig tunes the circuit around a backend.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the
	// circuit.
	MaxFailures uint32
	// Cooldown is how long the circuit stays open before a probe is
	// allowed through.
	Cooldown time.Duration
	// Probes is the number of concurrent requests allowed in half-open
	// state.
	Probes uint32
}

// Resilient wraps a Backend with a circuit breaker so a struggling
// model API sheds load instead of queueing timeouts.
type Resilient struct {
	backend Backend
	cfg     BreakerConfig
	logger  *logging.Logger
	now     func() time.Time

	mu       sync.Mutex
	state    State
	failures uint32
	inflight uint32
	openedAt time.Time
}

// NewResilient wraps a backend. Zero config fields get defaults.
func NewResilient(backend Backend, cfg BreakerConfig, logger *logging.Logger) *Resilient {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.Probes == 0 {
		cfg.Probes = 1
	}
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Resilient{
		backend: backend,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		state:   StateClosed,
	}
}

// State returns the current circuit state.
func (r *Resilient) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentState()
}

// Generate forwards to the wrapped backend when the circuit allows it.
func (r *Resilient) Generate(ctx context.Context, req Request) (string, error) {
	if err := r.before(); err != nil {
		return "", err
	}

	out, err := r.backend.Generate(ctx, req)
	r.after(err == nil)
	return out, err
}

// GenerateImage forwards to the wrapped backend when it supports image
// generation and the circuit allows the call. Image failures count
// against the same circuit as text generation; both hit the same API.
func (r *Resilient) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	images, ok := r.backend.(ImageBackend)
	if !ok {
		return nil, ErrImageUnsupported
	}
	if err := r.before(); err != nil {
		return nil, err
	}

	out, err := images.GenerateImage(ctx, req)
	r.after(err == nil)
	return out, err
}

func (r *Resilient) before() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.currentState() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if r.inflight >= r.cfg.Probes {
			return ErrCircuitOpen
		}
		r.inflight++
	}
	return nil
}

func (r *Resilient) after(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.currentState()
	if state == StateHalfOpen && r.inflight > 0 {
		r.inflight--
	}

	if success {
		r.failures = 0
		if state == StateHalfOpen {
			r.setState(StateClosed)
		}
		return
	}

	switch state {
	case StateClosed:
		r.failures++
		if r.failures >= r.cfg.MaxFailures {
			r.setState(StateOpen)
		}
	case StateHalfOpen:
		r.setState(StateOpen)
	}
}

// currentState applies the cooldown transition. Caller holds the lock.
func (r *Resilient) currentState() State {
	if r.state == StateOpen && r.now().Sub(r.openedAt) >= r.cfg.Cooldown {
		r.state = StateHalfOpen
		r.inflight = 0
	}
	return r.state
}

// setState records a transition. Caller holds the lock.
func (r *Resilient) setState(state State) {
	if r.state == state {
		return
	}
	prev := r.state
	r.state = state
	r.failures = 0
	r.inflight = 0
	if state == StateOpen {
		r.openedAt = r.now()
	}
	r.logger.Warn("vision circuit state change",
		zap.String("from", prev.String()),
		zap.String("to", state.String()),
	)
}
