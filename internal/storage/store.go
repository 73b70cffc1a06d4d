package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/gravmod/internal/gravity"
	"github.com/san-kum/gravmod/internal/model"
	"github.com/san-kum/gravmod/internal/survey"
)

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
	modelFile    = "model.json"
	modelsDir    = "models"
)

// ErrNoRun indicates a run id with no stored metadata.
var ErrNoRun = errors.New("storage: no such run")

// Store keeps evaluation runs under baseDir, one directory per run, and
// saved models under baseDir/models.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Model   string
	Survey  string
	Workers int
}

type RunMetadata struct {
	ID         string                       `json:"id"`
	Model      string                       `json:"model"`
	Timestamp  time.Time                    `json:"timestamp"`
	Survey     string                       `json:"survey"`
	Components []string                     `json:"components"`
	Points     int                          `json:"points"`
	Bodies     int                          `json:"bodies"`
	Workers    int                          `json:"workers"`
	ElapsedMS  float64                      `json:"elapsed_ms"`
	Metrics    map[string]map[string]Number `json:"metrics"`
}

// Field is the sampled output of a run as read back from disk.
type Field struct {
	Points     []mgl64.Vec3
	Components []string
	Values     map[string][]float64
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "model"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// Save writes metadata.json, field.csv and model.json for res and returns
// the run id.
func (s *Store) Save(info RunInfo, doc *model.Document, res *survey.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", slug(info.Model), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      info.Model,
		Timestamp:  now,
		Survey:     info.Survey,
		Components: componentNames(res.Components),
		Points:     len(res.Points),
		Workers:    info.Workers,
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Metrics:    make(map[string]map[string]Number, len(res.Metrics)),
	}
	if doc != nil {
		meta.Bodies = doc.Len()
	}
	for c, m := range res.Metrics {
		meta.Metrics[c.String()] = numberMap(m)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if doc != nil {
		if err := writeJSON(filepath.Join(runDir, modelFile), doc); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filepath.Join(runDir, fieldFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, res.Points, res.Components, res.Fields); err != nil {
		return "", err
	}

	return runID, f.Close()
}

func componentNames(cs []gravity.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

// List returns the metadata of every readable run, oldest first.
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
		if !entry.IsDir() || entry.Name() == modelsDir {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			slog.Debug("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadField reads back the sampled field of a run.
func (s *Store) LoadField(runID string) (*Field, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 3 {
		return nil, fmt.Errorf("run %s: field.csv has no header", runID)
	}

	header := records[0]
	field := &Field{
		Points:     make([]mgl64.Vec3, 0, len(records)-1),
		Components: header[3:],
		Values:     make(map[string][]float64, len(header)-3),
	}
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d column %s: %w", runID, i+1, header[j], err)
			}
			vals[j] = v
		}
		field.Points = append(field.Points, mgl64.Vec3{vals[0], vals[1], vals[2]})
		for j, name := range field.Components {
			field.Values[name] = append(field.Values[name], vals[j+3])
		}
	}
	return field, nil
}

// LoadModel reads the model stored with a run.
func (s *Store) LoadModel(runID string) (*model.Document, error) {
	return LoadModelFile(filepath.Join(s.baseDir, runID, modelFile))
}

// SaveModel writes doc to baseDir/models/<name>.json and returns the path.
func (s *Store) SaveModel(doc *model.Document) (string, error) {
	dir := filepath.Join(s.baseDir, modelsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, slug(doc.Name)+".json")
	return path, SaveModelFile(path, doc)
}

// SaveModelFile writes doc to path, replacing any existing file.
func SaveModelFile(path string, doc *model.Document) error {
	return writeJSON(path, doc)
}

// LoadModelFile reads a model document from path.
func LoadModelFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}
