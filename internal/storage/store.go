// Package storage persists simulation runs: one directory per run holding
// metadata.json and the recorded position history as positions.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/planetary/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Scenario   string    `json:"scenario"`
	Timestamp  time.Time `json:"timestamp"`
	Labels     []string  `json:"labels"`
	Bodies     int       `json:"bodies"`
	Dt         float64   `json:"dt"`
	TimeUnits  string    `json:"time_units"`
	SpaceUnits string    `json:"space_units"`
	MassUnits  string    `json:"mass_units"`
	Limit      int       `json:"limit"`
	Steps      int       `json:"steps"`
}

// Save writes a run directory for a stepped system. The CSV carries one row
// per history snapshot: step index followed by <label>_x, <label>_y columns
// in system order.
func (s *Store) Save(scenarioName string, timeUnits, spaceUnits, massUnits string, sys *engine.System) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenarioName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	steps := 0
	if len(sys.History) > 0 {
		steps = len(sys.History) - 1
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenarioName,
		Timestamp:  time.Now(),
		Labels:     sys.Labels,
		Bodies:     sys.N(),
		Dt:         sys.Dt,
		TimeUnits:  timeUnits,
		SpaceUnits: spaceUnits,
		MassUnits:  massUnits,
		Limit:      sys.Limit,
		Steps:      steps,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"step"}
	for _, label := range sys.Labels {
		header = append(header, label+"_x", label+"_y")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for step, snap := range sys.History {
		row := []string{strconv.Itoa(step)}
		for _, p := range snap {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads a run's position snapshots back, one []Vec2 per step,
// index-aligned with the run's labels.
func (s *Store) LoadHistory(runID string) ([][]engine.Vec2, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]engine.Vec2{}, nil
	}

	bodies := (len(records[0]) - 1) / 2
	history := make([][]engine.Vec2, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != 1+2*bodies {
			return nil, fmt.Errorf("storage: malformed row in %s/positions.csv", runID)
		}
		snap := make([]engine.Vec2, bodies)
		for b := 0; b < bodies; b++ {
			x, err := strconv.ParseFloat(record[1+2*b], 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(record[2+2*b], 64)
			if err != nil {
				return nil, err
			}
			snap[b] = engine.Vec2{X: x, Y: y}
		}
		history = append(history, snap)
	}

	return history, nil
}
