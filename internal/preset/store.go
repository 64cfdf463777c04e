package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"slatelink/internal/textutil"
)

// ErrNotFound reports a preset name with no file behind it.
var ErrNotFound = errors.New("preset not found")

// Store reads and writes presets under a single directory, one TOML file
// per preset. Filenames derive from sanitized preset names; the name inside
// the document is authoritative.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore opens (creating if needed) a preset directory.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create preset directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes a preset, overwriting any existing file for the same name.
func (s *Store) Save(p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name is empty")
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0o644); err != nil {
		return fmt.Errorf("write preset %q: %w", p.Name, err)
	}
	return nil
}

// Load reads one preset by name.
func (s *Store) Load(name string) (Preset, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("read preset %q: %w", name, err)
	}
	var p Preset
	if err := toml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %q: %w", name, err)
	}
	return p, nil
}

// Delete removes a preset file. Deleting a missing preset is not an error.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	return nil
}

// List loads every preset in the directory, sorted by name. Files that fail
// to decode are skipped with a warning so one corrupt preset cannot hide
// the rest.
func (s *Store) List() ([]Preset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read preset directory: %w", err)
	}

	var presets []Preset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable preset", "path", path, "error", err)
			continue
		}
		var p Preset
		if err := toml.Unmarshal(data, &p); err != nil {
			s.logger.Warn("skipping corrupt preset", "path", path, "error", err)
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(entry.Name(), ".toml")
		}
		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// Names returns the sorted names of every loadable preset.
func (s *Store) Names() ([]string, error) {
	presets, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, textutil.SanitizeToken(name)+".toml")
}
