package ai

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/patrikeh/go-deep"

	"github.com/mensly/4dttt/game"
)

// NetworkConfig describes the evaluation network and its persisted form.
type NetworkConfig struct {
	Inputs       int           `json:"inputs"`
	HiddenLayers []int         `json:"hidden_layers"`
	LearningRate float64       `json:"learning_rate"`
	Weights      [][][]float64 `json:"weights,omitempty"`
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Inputs:       game.Cells,
		HiddenLayers: []int{64, 32},
		LearningRate: 0.01,
	}
}

// Neural scores candidate placements with a small feed-forward network and
// plays the best one, after the same win/block shortcuts the other strategies
// use. Without a trained network it behaves exactly like the heuristic
// strategy.
type Neural struct {
	checker  *game.WinChecker
	network  *deep.Neural
	fallback *Simple
}

func NewNeural(options ...Option) *Neural {
	s := newSettings(options)
	return &Neural{
		checker:  game.DefaultWinChecker(),
		network:  s.network,
		fallback: NewSimple(options...),
	}
}

// BuildNetwork constructs the network for a config, applying saved weights
// when present.
func BuildNetwork(config NetworkConfig) *deep.Neural {
	layout := append([]int{}, config.HiddenLayers...)
	layout = append(layout, 1) // Single evaluation score output

	network := deep.NewNeural(&deep.Config{
		Inputs:     config.Inputs,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	if len(config.Weights) > 0 {
		network.ApplyWeights(config.Weights)
	}
	return network
}

func (n *Neural) ChooseMove(snap game.Snapshot, symbol string) (game.Coordinate, error) {
	free := snap.Board.EmptyCoordinates()
	if len(free) == 0 {
		return game.Coordinate{}, game.ErrNoLegalMove
	}

	for _, c := range free {
		if n.checker.CompletesLine(snap.Board, c, symbol) {
			return c, nil
		}
	}
	for _, c := range free {
		for _, p := range snap.Players {
			if p.Symbol == symbol {
				continue
			}
			if n.checker.CompletesLine(snap.Board, c, p.Symbol) {
				return c, nil
			}
		}
	}

	if n.network == nil {
		return n.fallback.ChooseMove(snap, symbol)
	}

	// Score each placement by predicting the resulting position. Free cells
	// come in flat-index order, so the first maximum keeps this
	// deterministic for fixed weights.
	board := snap.Board.Clone()
	best := free[0]
	bestScore := 0.0
	for i, c := range free {
		mustPlace(board, symbol, c)
		score := n.network.Predict(boardFeatures(board, symbol))[0]
		board.Unplace(c)

		if i == 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// boardFeatures encodes a board from one symbol's perspective: +1 own cells,
// -1 any opponent's, 0 free. Values already sit in [-1, 1] so no further
// normalization is needed.
func boardFeatures(b *game.Board, symbol string) []float64 {
	features := make([]float64, game.Cells)
	for i := 0; i < game.Cells; i++ {
		cell := b.At(game.CoordinateAt(i))
		switch {
		case cell == "":
			features[i] = 0
		case cell == symbol:
			features[i] = 1
		default:
			features[i] = -1
		}
	}
	return features
}

// SaveNetwork persists a trained network with its architecture.
func SaveNetwork(path string, network *deep.Neural, config NetworkConfig) error {
	config.Weights = network.Dump().Weights
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}
	return nil
}

// LoadNetwork rebuilds a persisted network.
func LoadNetwork(path string) (*deep.Neural, NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NetworkConfig{}, fmt.Errorf("failed to read network file: %w", err)
	}
	var config NetworkConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, NetworkConfig{}, fmt.Errorf("failed to decode network file: %w", err)
	}
	return BuildNetwork(config), config, nil
}
