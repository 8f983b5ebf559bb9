package generate

import (
	"log/slog"
	mathrand "math/rand/v2"
	"time"

	"github.com/getmockd/pactcore/pkg/logging"
)

// Context is the read-only lookup consulted by generators.
type Context map[string]any

// Engine produces values from generators. An Engine built without WithRand
// is safe for concurrent use; a seeded Engine is not, because *rand.Rand is
// not.
type Engine struct {
	rng *mathrand.Rand
	now func() time.Time
	log *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes generation deterministic by drawing from rng.
func WithRand(rng *mathrand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithClock sets the source of "now" for date generators.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger for generation diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.SetLogger(log)
	}
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLogger sets the logger. A nil logger disables logging.
func (e *Engine) SetLogger(log *slog.Logger) {
	e.log = logging.Component(log, "generate")
}

var defaultEngine = New()

// Default returns the shared unseeded engine.
func Default() *Engine {
	return defaultEngine
}
