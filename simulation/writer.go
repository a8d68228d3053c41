package simulation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mensly/4dttt/ai"
)

// Writer persists one batch under a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(dir string, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir reports where this batch is written.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WritePlayerSpecs(specs []PlayerSpec) error {
	// Create a file
	path := filepath.Join(w.baseDir, "player_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create player configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"name", "symbol", "strategy", "depth", "workers"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write player configs header: %w", err)
	}

	// Write each row
	for _, spec := range specs {
		row := []string{
			spec.Name,
			spec.Symbol,
			spec.Strategy,
			strconv.Itoa(spec.Depth),
			strconv.Itoa(spec.Workers),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write player config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteResults(results []Result) error {
	// Create a file
	path := filepath.Join(w.baseDir, "game_results.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game results file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"game", "winner", "winner_name", "draw", "moves", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game results header: %w", err)
	}

	// Write each row
	for _, result := range results {
		row := []string{
			strconv.Itoa(result.Game),
			result.Winner,
			result.WinnerName,
			strconv.FormatBool(result.Draw),
			strconv.Itoa(result.Moves),
			result.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game result row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"game", "seq", "symbol", "w", "x", "y", "z", "depth", "workers", "duration", "nodes", "cutoffs", "fast_path"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Seq),
			record.Symbol,
			strconv.Itoa(record.Coordinate.W),
			strconv.Itoa(record.Coordinate.X),
			strconv.Itoa(record.Coordinate.Y),
			strconv.Itoa(record.Coordinate.Z),
			strconv.Itoa(record.Metric.Depth),
			strconv.Itoa(record.Metric.Workers),
			record.Metric.Duration.String(),
			strconv.Itoa(record.Metric.Nodes),
			strconv.Itoa(record.Metric.Cutoffs),
			strconv.FormatBool(record.Metric.FastPath),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}

// WriteTrainingRecords dumps the finished games in the stats builder's
// input format.
func (w *Writer) WriteTrainingRecords(records []ai.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode training records: %w", err)
	}

	path := filepath.Join(w.baseDir, "training_data.json")
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write training records file: %w", err)
	}

	return nil
}

// LoadTrainingRecords reads a training_data.json written by an earlier run.
func LoadTrainingRecords(path string) ([]ai.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training records file: %w", err)
	}

	var records []ai.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode training records: %w", err)
	}
	return records, nil
}
