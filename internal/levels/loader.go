// Package levels loads hand-authored level files. Files are treated as
// untrusted: every one passes through the same normalizer as AI output.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/levels/formats"
	"github.com/vovakirdan/courier-levels/internal/validate"
)

// Level is a normalized level loaded from a file.
type Level struct {
	ID          string
	FilePath    string
	Config      level.Config
	Adjustments []validate.Adjustment
}

// Origin returns the origin to report when this level is applied.
func (l Level) Origin() level.Origin {
	return level.Origin{Kind: level.OriginFile, Prompt: l.FilePath}
}

// Result is the outcome of loading one file.
type Result struct {
	Path  string
	Level Level
	Err   error
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root       string
	normalizer *validate.Normalizer
}

// NewLoader creates a new level loader.
func NewLoader(root string, normalizer *validate.Normalizer) *Loader {
	if normalizer == nil {
		normalizer = validate.NewNormalizer(nil)
	}
	return &Loader{Root: root, normalizer: normalizer}
}

// Scan recursively loads every supported file under Root and reports a
// result per file, sorted by path.
func (l *Loader) Scan() ([]Result, error) {
	var results []Result

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(path) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		results = append(results, Result{Path: path, Level: lvl, Err: err})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// LoadAll loads all valid level files, skipping unreadable ones.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	results, err := l.Scan()
	if err != nil {
		return nil, err
	}

	var levels []Level
	for _, r := range results {
		if r.Err == nil {
			levels = append(levels, r.Level)
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and normalizes a single level file. The ID is the "id"
// key when present, otherwise the file name without extension.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	candidate, err := formats.Parse(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	id := level.Text(candidate["id"], strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	cfg, adjustments := l.normalizer.NormalizeWithReport(candidate)

	return Level{
		ID:          id,
		FilePath:    path,
		Config:      cfg,
		Adjustments: adjustments,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// IsLevelFile reports whether path has a supported extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
