package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/orbsim/internal/orb"
	"github.com/san-kum/orbsim/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Store keeps recorded runs, one directory per run holding metadata.json
// and frames.csv.
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
	ID        string             `json:"id"`
	Script    string             `json:"script"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	FPS       int                `json:"fps"`
	Duration  time.Duration      `json:"duration"`
	Frames    int                `json:"frames"`
	Start     orb.Vec2           `json:"start"`
	End       orb.Vec2           `json:"end"`
	Settings  orb.Settings       `json:"settings"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newRunID(script string) string {
	return fmt.Sprintf("%s_%s", script, uuid.NewString()[:8])
}

func (s *Store) Save(settings orb.Settings, result *sim.Result, metrics map[string]float64) (string, error) {
	runID := newRunID(result.Script)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Script:    result.Script,
		Timestamp: time.Now(),
		Seed:      result.Config.Seed,
		FPS:       result.Config.FPS,
		Duration:  result.Config.Duration,
		Frames:    len(result.Frames),
		Start:     result.Start,
		End:       result.End,
		Settings:  settings,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Rows whose time column is not numeric
// are skipped.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		secs, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		values := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			values = append(values, v)
		}
		frames = append(frames, sim.FrameFromValues(time.Duration(secs*float64(time.Second)), values))
	}
	return frames, nil
}

func (s *Store) Delete(runID string) error {
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(dir)
}
