package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dropsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "time", "id", "x", "y", "vx", "vy", "radius", "r", "g", "b"}

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
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Collision  string             `json:"collision"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Steps      int                `json:"steps"`
	Particles  int                `json:"particles"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding meta and every recorded frame. ID,
// timestamp, step and particle counts are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics
	if n := len(result.Frames); n > 0 {
		meta.Particles = len(result.Frames[n-1])
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	if err := WriteFramesCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads a run's frames back into a Result. Metrics and contact
// counts are not part of the frame file.
func (s *Store) LoadFrames(runID string) (*dynamo.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	result := &dynamo.Result{Metrics: make(map[string]float64)}
	if len(records) < 2 {
		return result, nil
	}

	for i, record := range records[1:] {
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+2, err)
		}
		tm, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+2, err)
		}
		for len(result.Frames) <= frame {
			result.Frames = append(result.Frames, []dynamo.Sample{})
			result.Times = append(result.Times, tm)
		}
		if record[2] == "" {
			continue
		}
		sample, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+2, err)
		}
		result.Frames[frame] = append(result.Frames[frame], sample)
	}
	result.StepsTaken = len(result.Frames) - 1
	return result, nil
}

// Track returns the recorded trajectory of one particle of a stored run.
func (s *Store) Track(runID string, id uint64) ([]float64, []dynamo.Vec2, error) {
	result, err := s.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	times, track := result.Track(id)
	return times, track, nil
}
