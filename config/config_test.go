package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMustLoadDefaults(t *testing.T) {
	config := MustLoad("")

	require.Equal(t, "info", config.LogLevel)
	require.Equal(t, "results", config.Output)
	require.Equal(t, 100, config.Simulation.Games)
	require.Equal(t, uint64(1), config.Simulation.Seed)
	require.Equal(t, DefaultPlayers(), config.Simulation.Players, "An empty roster should fall back to the stock seats")
	require.Equal(t, "network.json", config.Training.Network)
	require.Equal(t, "stats.json.gz", config.Training.Stats)
	require.Equal(t, 50, config.Training.Iterations)
	require.Equal(t, 0.01, config.Training.LearningRate)
	require.Equal(t, []int{64, 32}, config.Training.HiddenLayers)
}

func TestMustLoadFile(t *testing.T) {
	yaml := `log-level: debug
output: out
simulation:
  games: 7
  seed: 42
  players:
    - name: Left
      symbol: X
      strategy: simple
    - name: Right
      symbol: O
      strategy: minimax
      depth: 3
      workers: 2
    - name: Up
      symbol: A
      strategy: simple
    - name: Down
      symbol: B
      strategy: simple
training:
  iterations: 5
  learning-rate: 0.1
  hidden-layers: [16, 8]
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	config := MustLoad(path)

	require.Equal(t, "debug", config.LogLevel)
	require.Equal(t, "out", config.Output)
	require.Equal(t, 7, config.Simulation.Games)
	require.Equal(t, uint64(42), config.Simulation.Seed)
	require.Len(t, config.Simulation.Players, 4)
	require.Equal(t, PlayerConfig{Name: "Right", Symbol: "O", Strategy: "minimax", Depth: 3, Workers: 2}, config.Simulation.Players[1])
	require.Equal(t, 5, config.Training.Iterations)
	require.Equal(t, 0.1, config.Training.LearningRate)
	require.Equal(t, []int{16, 8}, config.Training.HiddenLayers)
	require.Equal(t, "network.json", config.Training.Network, "Unset keys should keep their defaults")
}

func TestMustLoadMissingFile(t *testing.T) {
	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
	})
}
