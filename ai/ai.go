package ai

import (
	"fmt"
	"time"

	"github.com/patrikeh/go-deep"

	"github.com/mensly/4dttt/game"
)

// Strategy picks a move for the acting symbol from a game snapshot. Every
// implementation returns a free, in-range coordinate while the game is
// running; invoking one with no free cell left is a caller bug and surfaces
// game.ErrNoLegalMove.
type Strategy interface {
	ChooseMove(snap game.Snapshot, symbol string) (game.Coordinate, error)
}

// Strategy names accepted by New.
const (
	KindSimple  = "simple"
	KindMinimax = "minimax"
	KindLearned = "learned"
	KindNeural  = "neural"
)

// New builds a strategy by name.
func New(kind string, options ...Option) (Strategy, error) {
	switch kind {
	case KindSimple:
		return NewSimple(options...), nil
	case KindMinimax:
		return NewMinimax(options...), nil
	case KindLearned:
		return NewLearned(options...), nil
	case KindNeural:
		return NewNeural(options...), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", kind)
	}
}

type Option func(s *settings)

type settings struct {
	seed      uint64
	depth     int
	workers   int
	stats     Stats
	network   *deep.Neural
	collector Collector
}

// WithSeed fixes the random source so fallback choices reproduce across runs.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithDepth sets the minimax search depth in plies.
func WithDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

// WithParallelism sets how many workers share the root candidates of a
// minimax search.
func WithParallelism(workers int) Option {
	return func(s *settings) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithStats hands the learned strategy its statistics table.
func WithStats(stats Stats) Option {
	return func(s *settings) {
		if stats != nil {
			s.stats = stats
		}
	}
}

// WithNetwork hands the neural strategy a trained evaluation network.
func WithNetwork(network *deep.Neural) Option {
	return func(s *settings) {
		if network != nil {
			s.network = network
		}
	}
}

// WithCollector attaches a search metrics collector. The caller keeps the
// reference and reads a metric off it after each move.
func WithCollector(collector Collector) Option {
	return func(s *settings) {
		if collector != nil {
			s.collector = collector
		}
	}
}

func newSettings(options []Option) *settings {
	s := &settings{ // Default values
		seed:      uint64(time.Now().UnixNano()),
		depth:     DefaultDepth,
		workers:   1,
		collector: NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}
