package bnb

import (
	"errors"
	"time"
)

// Sentinel errors returned by the engine.
var (
	// ErrBadOptions indicates negative limits or tolerance.
	ErrBadOptions = errors.New("bnb: invalid options")

	// ErrNilModel indicates a nil *ilp.Model.
	ErrNilModel = errors.New("bnb: nil model")

	// ErrUnboundedDomain indicates a variable whose upper bound stays
	// infinite after root propagation; the engine only searches finite boxes.
	ErrUnboundedDomain = errors.New("bnb: variable has no finite upper bound")

	// ErrIncumbentRejected indicates that the final incumbent failed the
	// model check, i.e. an internal engine fault.
	ErrIncumbentRejected = errors.New("bnb: incumbent failed verification")
)

// DefaultEps is the numeric tolerance used for bound and activity tests.
const DefaultEps = 1e-9

// checkEvery is the node cadence of deadline and context checks (power of two).
const checkEvery = 1024

// Options configures the engine.
//
//   - TimeLimit:  soft wall-clock budget; 0 disables it.
//   - MaxNodes:   node budget; 0 disables it.
//   - Relaxation: also bound every node with its LP relaxation.
//   - Eps:        numeric tolerance (0 ⇒ DefaultEps).
type Options struct {
	TimeLimit  time.Duration
	MaxNodes   int64
	Relaxation bool
	Eps        float64
}

// DefaultOptions returns no limits, no LP bound and DefaultEps.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps}
}

// Option mutates Options.
type Option func(*Options)

// WithTimeLimit sets a soft wall-clock budget.
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithMaxNodes caps the number of explored nodes.
func WithMaxNodes(n int64) Option { return func(o *Options) { o.MaxNodes = n } }

// WithRelaxation toggles the LP-relaxation bound.
func WithRelaxation(on bool) Option { return func(o *Options) { o.Relaxation = on } }

func (o Options) validate() error {
	if o.TimeLimit < 0 || o.MaxNodes < 0 || o.Eps < 0 || o.Eps != o.Eps {
		return ErrBadOptions
	}

	return nil
}
