package ai

import (
	"errors"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"

	"github.com/mensly/4dttt/game"
)

// Terminal rewards, from the mover's side: wins reinforce, losses penalize
// harder than draws.
const (
	RewardWin  = 1.0
	RewardLoss = -0.5
	RewardDraw = 0.0
)

// TrainNetwork fits a fresh evaluation network on a record corpus. Replaying
// each game, the position right after every move becomes one example from the
// mover's perspective, labelled with the mover's terminal reward.
func TrainNetwork(records []Record, config NetworkConfig, iterations int) (*deep.Neural, error) {
	var examples training.Examples
	for _, record := range records {
		board := game.NewBoard()
		for _, move := range record.Moves {
			if err := board.Place(move.Symbol, move.Coordinate); err != nil {
				break
			}
			examples = append(examples, training.Example{
				Input:    boardFeatures(board, move.Symbol),
				Response: []float64{rewardFor(record, move.Symbol)},
			})
		}
	}
	if len(examples) == 0 {
		return nil, errors.New("no training examples in records")
	}

	examples.Shuffle()
	network := BuildNetwork(config)
	trainer := training.NewTrainer(training.NewSGD(config.LearningRate, 0.5, 0.0, false), 0)
	trainer.Train(network, examples, nil, iterations)
	return network, nil
}

func rewardFor(record Record, symbol string) float64 {
	switch {
	case record.Draw:
		return RewardDraw
	case record.Winner == symbol:
		return RewardWin
	default:
		return RewardLoss
	}
}
