package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/frical/internal/calib"
)

// Store persists calibration runs, one directory per run holding
// metadata.json and history.csv.
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
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	TargetX       float64   `json:"target_x"`
	Result        float64   `json:"result"`
	Converged     bool      `json:"converged"`
	Iterations    int       `json:"iterations"`
	Steps         int       `json:"steps"`
	Dt            float64   `json:"dt"`
	ImpulseX      float64   `json:"impulse_x"`
	ImpulseY      float64   `json:"impulse_y"`
	MaxIterations int       `json:"max_iterations"`
	Tolerance     float64   `json:"tolerance"`
}

// Save writes one run. The ID and timestamp are assigned here.
func (s *Store) Save(meta RunMetadata, history []calib.Trial) (string, error) {
	runID := fmt.Sprintf("cal_%s", uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "guess", "error"}); err != nil {
		return "", err
	}
	for _, t := range history {
		row := []string{
			strconv.Itoa(t.Iteration),
			strconv.FormatFloat(t.Guess, 'f', 6, 64),
			strconv.FormatFloat(t.Error, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
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

func (s *Store) LoadHistory(runID string) ([]calib.Trial, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	history := make([]calib.Trial, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		iter, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		guess, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		trialErr, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		history = append(history, calib.Trial{Iteration: iter, Guess: guess, Error: trialErr})
	}

	return history, nil
}
