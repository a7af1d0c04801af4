package search

import "github.com/go-logr/logr"

// Log verbosity used by strategies; matches internal/logging.
const (
	logDebug = 1
	logTrace = 2
)

// Event describes one completed strategy iteration.
type Event struct {
	// Strategy is the name given with WithName (or the strategy default).
	Strategy string
	// Iteration counts completed iterations of this strategy instance, from 1.
	Iteration int
	// Score is the best score known to the strategy after the iteration.
	Score float64
	// Improved is true when the iteration raised the best score.
	Improved bool
}

// Observer receives strategy events. Implementations shared between parallel
// searches must be goroutine-safe.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc lets a function act as an Observer.
type ObserverFunc func(e Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

// Option configures the ambient behavior of a strategy.
type Option func(*settings)

type settings struct {
	name     string
	log      logr.Logger
	observer Observer
}

// WithName sets the strategy name used in logs and events.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithLogger sets the strategy logger. Default: logr.Discard().
func WithLogger(l logr.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithObserver sets the event observer. nil restores the no-op observer.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o == nil {
			o = nopObserver{}
		}
		s.observer = o
	}
}

func newSettings(defaultName string, opts []Option) settings {
	s := settings{
		name:     defaultName,
		log:      logr.Discard(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.log = s.log.WithValues("strategy", s.name)

	return s
}

func (s *settings) emit(iteration int, score float64, improved bool) {
	s.observer.Observe(Event{Strategy: s.name, Iteration: iteration, Score: score, Improved: improved})
}
