package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Setup records how an experiment was run.
type Setup struct {
	Name      string        `yaml:"name"`
	Agents    []string      `yaml:"agents"`
	NumGames  int           `yaml:"numGames"` // per agent
	Seed      uint64        `yaml:"seed"`
	MaxMoves  int           `yaml:"maxMoves"`
	StartTime time.Time     `yaml:"startTime"`
	EndTime   time.Time     `yaml:"endTime"`
	Duration  time.Duration `yaml:"duration"`
}

type GameRecord struct {
	ID int
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> and writes every file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(setup Setup) error {
	path := filepath.Join(w.baseDir, "setup.yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(setup); err != nil {
		f.Close()
		return fmt.Errorf("failed to write setup: %w", err)
	}
	if err := encoder.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return closeFile(f, "setup.yaml")
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "seed", "score", "max_tile", "moves", "fours_spawned", "start_time", "end_time", "duration", "moves_per_second"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Agent,
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Score),
			strconv.Itoa(record.MaxTile),
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.FoursSpawned),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.FormatFloat(record.MovesPerSecond, 'f', 2, 64),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "direction", "moved", "score", "depth_limit", "prob_threshold", "cache_limit", "duration", "tasks", "failed_tasks", "move_nodes", "chance_nodes", "cutoffs", "cache_lookups", "cache_hits"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Direction,
			strconv.FormatBool(record.Moved),
			strconv.Itoa(record.Score),
			strconv.Itoa(record.DepthLimit),
			strconv.FormatFloat(record.ProbThreshold, 'g', -1, 64),
			strconv.Itoa(record.CacheLimit),
			record.Duration.String(),
			strconv.Itoa(record.Tasks),
			strconv.Itoa(record.FailedTasks),
			strconv.FormatInt(record.MoveNodes, 10),
			strconv.FormatInt(record.ChanceNodes, 10),
			strconv.FormatInt(record.Cutoffs, 10),
			strconv.FormatInt(record.CacheLookups, 10),
			strconv.FormatInt(record.CacheHits, 10),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	// WriteAll flushes and reports any buffered write error
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return closeFile(f, name)
}

// closeFile reports a failed close, which can lose data the OS had buffered.
func closeFile(f *os.File, name string) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}
