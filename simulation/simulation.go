package simulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrikeh/go-deep"
	"github.com/rs/zerolog/log"

	"github.com/mensly/4dttt/ai"
	"github.com/mensly/4dttt/game"
)

// PlayerSpec describes one simulated seat: who plays, with which strategy,
// and the strategy's inputs.
type PlayerSpec struct {
	Name     string
	Symbol   string
	Strategy string
	Depth    int
	Workers  int
	Stats    ai.Stats     // Learned seats
	Network  *deep.Neural // Neural seats
}

// Config drives one batch of AI-vs-AI games with a fixed roster.
type Config struct {
	Games   int
	Seed    uint64
	Players []PlayerSpec
}

// Result captures one finished game.
type Result struct {
	Game       int
	Winner     string // Winning symbol, empty on a draw
	WinnerName string
	Draw       bool
	Moves      int
	Duration   time.Duration
}

// MoveRecord is one move with the search metrics behind it. Seats without a
// searching strategy report a zero metric.
type MoveRecord struct {
	Game       int
	Seq        int
	Symbol     string
	Coordinate game.Coordinate
	Metric     ai.SearchMetric
}

// Runner plays the configured games and accumulates results, training
// records and per-move records. It drives games strictly through the public
// Game contract.
type Runner struct {
	config     Config
	strategies map[string]ai.Strategy
	collectors map[string]ai.Collector // Minimax seats only
}

func NewRunner(config Config) (*Runner, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("need a positive game count, got %d", config.Games)
	}

	strategies := make(map[string]ai.Strategy, len(config.Players))
	collectors := make(map[string]ai.Collector)
	for seat, spec := range config.Players {
		options := []ai.Option{
			// Distinct deterministic stream per seat
			ai.WithSeed(config.Seed + uint64(seat)),
		}
		if spec.Depth > 0 {
			options = append(options, ai.WithDepth(spec.Depth))
		}
		if spec.Workers > 0 {
			options = append(options, ai.WithParallelism(spec.Workers))
		}
		if spec.Stats != nil {
			options = append(options, ai.WithStats(spec.Stats))
		}
		if spec.Network != nil {
			options = append(options, ai.WithNetwork(spec.Network))
		}
		if spec.Strategy == ai.KindMinimax {
			collector := ai.NewCollector()
			collectors[spec.Symbol] = collector
			options = append(options, ai.WithCollector(collector))
		}

		strategy, err := ai.New(spec.Strategy, options...)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s seat %q: %w", spec.Strategy, spec.Symbol, err)
		}
		strategies[spec.Symbol] = strategy
	}

	return &Runner{
		config:     config,
		strategies: strategies,
		collectors: collectors,
	}, nil
}

// Run plays every configured game to completion.
func (r *Runner) Run() ([]Result, []ai.Record, []MoveRecord, error) {
	log.Info().Msgf("starting %d games with %d players...", r.config.Games, len(r.config.Players))

	results := []Result{}
	records := []ai.Record{}
	moves := []MoveRecord{}
	for i := 0; i < r.config.Games; i++ {
		result, record, gameMoves, err := r.playGame(i + 1)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		results = append(results, result)
		records = append(records, record)
		moves = append(moves, gameMoves...)

		outcome := "draw"
		if !result.Draw {
			outcome = fmt.Sprintf("winner %s (%s)", result.Winner, result.WinnerName)
		}
		log.Info().Msgf("completed game %d of %d in %d moves: %s", i+1, r.config.Games, result.Moves, outcome)
	}

	log.Info().Msgf("completed %d games", r.config.Games)
	return results, records, moves, nil
}

// playGame drives a single game to FINISHED and reports it.
func (r *Runner) playGame(number int) (Result, ai.Record, []MoveRecord, error) {
	g, err := game.NewGameWithPlayers(r.newRoster()...)
	if err != nil {
		return Result{}, ai.Record{}, nil, fmt.Errorf("failed to seat players: %w", err)
	}
	if err := g.Start(); err != nil {
		return Result{}, ai.Record{}, nil, fmt.Errorf("failed to start: %w", err)
	}

	moves := []MoveRecord{}
	start := time.Now()
	for turn := 0; turn < game.Cells; turn++ {
		if g.Status() != game.StatusPlaying {
			break
		}
		snap := g.Snapshot()
		current, ok := snap.CurrentPlayer()
		if !ok {
			break
		}

		strategy := r.strategies[current.Symbol]
		c, err := strategy.ChooseMove(snap, current.Symbol)
		if err != nil {
			return Result{}, ai.Record{}, nil, fmt.Errorf("%s failed to choose a move: %w", current.Symbol, err)
		}
		if err := g.ApplyMove(current.ID, c); err != nil {
			return Result{}, ai.Record{}, nil, fmt.Errorf("%s played an illegal move %s: %w", current.Symbol, c, err)
		}

		move := MoveRecord{
			Game:       number,
			Seq:        g.MoveCount(),
			Symbol:     current.Symbol,
			Coordinate: c,
		}
		if collector, ok := r.collectors[current.Symbol]; ok {
			move.Metric = collector.Complete()
		}
		moves = append(moves, move)
	}
	duration := time.Since(start)

	result := Result{
		Game:     number,
		Moves:    g.MoveCount(),
		Duration: duration,
	}
	record := ai.Record{
		Symbols: symbolsOf(r.config.Players),
		Draw:    true,
	}
	for _, m := range g.History() {
		record.Moves = append(record.Moves, ai.RecordedMove{Symbol: m.Symbol, Coordinate: m.Coordinate})
	}
	if winner, ok := g.Winner(); ok {
		result.Winner = winner.Symbol
		result.WinnerName = winner.Name
		result.Draw = false
		record.Winner = winner.Symbol
		record.Draw = false
	} else {
		result.Draw = true
	}
	return result, record, moves, nil
}

// newRoster mints fresh identities so every game is independent.
func (r *Runner) newRoster() []game.Player {
	players := make([]game.Player, len(r.config.Players))
	for i, spec := range r.config.Players {
		players[i] = game.Player{
			ID:     uuid.NewString(),
			Name:   spec.Name,
			Symbol: spec.Symbol,
			Bot:    true,
		}
	}
	return players
}

func symbolsOf(specs []PlayerSpec) []string {
	symbols := make([]string, len(specs))
	for i, spec := range specs {
		symbols[i] = spec.Symbol
	}
	return symbols
}
