package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mensly/4dttt/ai"
	"github.com/mensly/4dttt/config"
	"github.com/mensly/4dttt/game"
	"github.com/mensly/4dttt/simulation"
)

func main() {
	mode := flag.String("mode", "simulate", "Run mode: simulate, train or demo")
	configPath := flag.String("config", "", "Path to a yaml config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("unknown log level %q: %v", cfg.LogLevel, err))
	}
	zerolog.SetGlobalLevel(level)

	switch *mode {
	case "simulate":
		runSimulation(cfg)
	case "train":
		runTraining(cfg)
	case "demo":
		runDemo(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

// runSimulation plays the configured batch and stores results alongside a
// training dump for later train runs.
func runSimulation(cfg *config.Config) {
	specs := buildSpecs(cfg.Simulation.Players)
	runner, err := simulation.NewRunner(simulation.Config{
		Games:   cfg.Simulation.Games,
		Seed:    cfg.Simulation.Seed,
		Players: specs,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create runner: %v", err))
	}

	results, records, moves, err := runner.Run()
	if err != nil {
		panic(fmt.Sprintf("failed to run simulation: %v", err))
	}

	simulation.Summarize(results).Log()

	// Store batch metadata and results
	writer, err := simulation.NewWriter(cfg.Output, "simulation")
	if err != nil {
		panic(fmt.Sprintf("failed to create results writer: %v", err))
	}

	err = writer.WritePlayerSpecs(specs)
	if err != nil {
		panic(fmt.Sprintf("failed to store player configs: %v", err))
	}
	log.Info().Msg("stored player configs")

	err = writer.WriteResults(results)
	if err != nil {
		panic(fmt.Sprintf("failed to store game results: %v", err))
	}
	log.Info().Msg("stored game results")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		panic(fmt.Sprintf("failed to store move records: %v", err))
	}
	log.Info().Msg("stored move records")

	err = writer.WriteTrainingRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to store training records: %v", err))
	}
	log.Info().Msg("stored training records")

	log.Info().Msgf("results written to %s", writer.BaseDir())
}

// runTraining rebuilds pattern stats and a network from a recorded batch.
func runTraining(cfg *config.Config) {
	if cfg.Training.Records == "" {
		panic("no training records configured: set training.records to a training_data.json")
	}

	records, err := simulation.LoadTrainingRecords(cfg.Training.Records)
	if err != nil {
		panic(fmt.Sprintf("failed to load training records: %v", err))
	}
	log.Info().Msgf("loaded %d recorded games", len(records))

	stats := ai.BuildStats(records)
	err = ai.SaveStats(cfg.Training.Stats, stats)
	if err != nil {
		panic(fmt.Sprintf("failed to store stats: %v", err))
	}
	log.Info().Msgf("stored stats for %d patterns in %s", len(stats), cfg.Training.Stats)

	netConfig := ai.DefaultNetworkConfig()
	if len(cfg.Training.HiddenLayers) > 0 {
		netConfig.HiddenLayers = cfg.Training.HiddenLayers
	}
	if cfg.Training.LearningRate > 0 {
		netConfig.LearningRate = cfg.Training.LearningRate
	}
	network, err := ai.TrainNetwork(records, netConfig, cfg.Training.Iterations)
	if err != nil {
		panic(fmt.Sprintf("failed to train network: %v", err))
	}
	err = ai.SaveNetwork(cfg.Training.Network, network, netConfig)
	if err != nil {
		panic(fmt.Sprintf("failed to store network: %v", err))
	}
	log.Info().Msgf("stored network in %s", cfg.Training.Network)
}

// runDemo plays a single game and prints the board after every move.
func runDemo(cfg *config.Config) {
	specs := buildSpecs(cfg.Simulation.Players)
	strategies := map[string]ai.Strategy{}
	players := make([]game.Player, len(specs))
	for i, spec := range specs {
		options := []ai.Option{ai.WithSeed(cfg.Simulation.Seed + uint64(i))}
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
		strategy, err := ai.New(spec.Strategy, options...)
		if err != nil {
			panic(fmt.Sprintf("failed to build %s seat %q: %v", spec.Strategy, spec.Symbol, err))
		}
		strategies[spec.Symbol] = strategy
		players[i] = game.Player{
			ID:     fmt.Sprintf("demo-%d", i+1),
			Name:   spec.Name,
			Symbol: spec.Symbol,
			Bot:    true,
		}
	}

	g, err := game.NewGameWithPlayers(players...)
	if err != nil {
		panic(fmt.Sprintf("failed to seat players: %v", err))
	}
	if err := g.Start(); err != nil {
		panic(fmt.Sprintf("failed to start: %v", err))
	}

	for g.Status() == game.StatusPlaying {
		snap := g.Snapshot()
		current, ok := snap.CurrentPlayer()
		if !ok {
			break
		}
		c, err := strategies[current.Symbol].ChooseMove(snap, current.Symbol)
		if err != nil {
			panic(fmt.Sprintf("%s failed to choose a move: %v", current.Symbol, err))
		}
		if err := g.ApplyMove(current.ID, c); err != nil {
			panic(fmt.Sprintf("%s played an illegal move: %v", current.Symbol, err))
		}
		fmt.Printf("Move %d: %s plays %s\n", g.MoveCount(), current.Symbol, c)
		printBoard(g.Snapshot().Board)
	}

	if winner, ok := g.Winner(); ok {
		line, _ := g.WinningLine()
		fmt.Printf("Game over! Winner: %s (%s) on %s %s %s\n",
			winner.Symbol, winner.Name, line[0], line[1], line[2])
	} else {
		fmt.Printf("Game over! Draw after %d moves\n", g.MoveCount())
	}
}

func buildSpecs(players []config.PlayerConfig) []simulation.PlayerSpec {
	specs := make([]simulation.PlayerSpec, len(players))
	for i, p := range players {
		spec := simulation.PlayerSpec{
			Name:     p.Name,
			Symbol:   p.Symbol,
			Strategy: p.Strategy,
			Depth:    p.Depth,
			Workers:  p.Workers,
		}
		if p.Stats != "" {
			stats, err := ai.LoadStats(p.Stats)
			if err != nil {
				panic(fmt.Sprintf("failed to load stats for %s: %v", p.Symbol, err))
			}
			spec.Stats = stats
		}
		if p.Network != "" {
			network, _, err := ai.LoadNetwork(p.Network)
			if err != nil {
				panic(fmt.Sprintf("failed to load network for %s: %v", p.Symbol, err))
			}
			spec.Network = network
		}
		specs[i] = spec
	}
	return specs
}

// printBoard renders the four axes as a 3x3 grid of 3x3 layers: blocks are
// addressed by (w, x), cells within a block by (y, z).
func printBoard(b *game.Board) {
	grid := b.Grid()
	for w := 0; w < game.AxisSize; w++ {
		for y := 0; y < game.AxisSize; y++ {
			var sb strings.Builder
			for x := 0; x < game.AxisSize; x++ {
				if x > 0 {
					sb.WriteString("  ")
				}
				for z := 0; z < game.AxisSize; z++ {
					symbol := grid[w][x][y][z]
					if symbol == "" {
						symbol = "."
					}
					fmt.Fprintf(&sb, "%-3s", symbol)
				}
			}
			fmt.Println(sb.String())
		}
		fmt.Println()
	}
}
