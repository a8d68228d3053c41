package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string           `yaml:"log-level" env-default:"info"`
	Output     string           `yaml:"output" env-default:"results"`
	Simulation SimulationConfig `yaml:"simulation"`
	Training   TrainingConfig   `yaml:"training"`
}

type SimulationConfig struct {
	Games   int            `yaml:"games" env-default:"100"`
	Seed    uint64         `yaml:"seed" env-default:"1"`
	Players []PlayerConfig `yaml:"players"`
}

type TrainingConfig struct {
	Records      string  `yaml:"records"`
	Network      string  `yaml:"network" env-default:"network.json"`
	Stats        string  `yaml:"stats" env-default:"stats.json.gz"`
	Iterations   int     `yaml:"iterations" env-default:"50"`
	LearningRate float64 `yaml:"learning-rate" env-default:"0.01"`
	HiddenLayers []int   `yaml:"hidden-layers" env-default:"64,32"`
}

type PlayerConfig struct {
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Strategy string `yaml:"strategy"`
	Depth    int    `yaml:"depth"`
	Workers  int    `yaml:"workers"`
	Stats    string `yaml:"stats"`
	Network  string `yaml:"network"`
}

// MustLoad - load all configurations from a yaml file, or from defaults
// when no path is given.
func MustLoad(path string) *Config {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load default config: %w", err))
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if len(config.Simulation.Players) == 0 {
		config.Simulation.Players = DefaultPlayers()
	}

	return config
}

// DefaultPlayers is the stock five-seat roster: four heuristic players
// around one searching player.
func DefaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "SimpleAI-1", Symbol: "X", Strategy: "simple"},
		{Name: "SimpleAI-2", Symbol: "O", Strategy: "simple"},
		{Name: "MinimaxAI", Symbol: "A", Strategy: "minimax", Depth: 2, Workers: 4},
		{Name: "SimpleAI-3", Symbol: "B", Strategy: "simple"},
		{Name: "SimpleAI-4", Symbol: "C", Strategy: "simple"},
	}
}
