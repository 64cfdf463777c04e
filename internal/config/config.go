package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	PresetDir string `toml:"preset_dir"`
	AuditDir  string `toml:"audit_dir"`
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`
}

// Match contains row-matching configuration: which columns join an image to
// a metadata row and the fuzzy confidence floor.
type Match struct {
	JoinPriority  []string `toml:"join_priority"`
	FallbackKeys  []string `toml:"fallback_keys"`
	MinConfidence float64  `toml:"min_confidence"`
}

// Overlay contains geometry and display constraints for overlay resolution.
type Overlay struct {
	SafeMarginPct float64 `toml:"safe_margin_pct"`
	SnapPct       float64 `toml:"snap_pct"`
	MinFontPt     int     `toml:"min_font_pt"`
	MaxRows       int     `toml:"max_rows"`
}

// Dataset contains dataset-level defaults applied when neither a per-image
// sidecar nor a preset supplies a field selection.
type Dataset struct {
	SuggestedFields  []string `toml:"suggested_fields"`
	InitialSelection []string `toml:"initial_selection"`
}

// Export contains sidecar collision handling.
type Export struct {
	Mode          string `toml:"mode"`
	SuffixPattern string `toml:"suffix_pattern"`
}

// Audit contains audit trail settings.
type Audit struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for SlateLink.
//
// Configuration sections by subsystem:
//   - Paths: preset, audit, state, and log directories
//   - Match: join key priority, fallback keys, fuzzy confidence floor
//   - Overlay: safe margin, snap grid, font floor, slate bar rows
//   - Dataset: suggested fields and initial selection defaults
//   - Export: sidecar collision mode
//   - Audit: audit trail toggle
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Match   Match   `toml:"match"`
	Overlay Overlay `toml:"overlay"`
	Dataset Dataset `toml:"dataset"`
	Export  Export  `toml:"export"`
	Audit   Audit   `toml:"audit"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/slatelink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("slatelink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.PresetDir, &c.Paths.AuditDir, &c.Paths.StateDir, &c.Paths.LogDir} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		path, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = path
	}

	c.Export.Mode = strings.ToLower(strings.TrimSpace(c.Export.Mode))
	if c.Export.Mode == "" {
		c.Export.Mode = defaultExportMode
	}
	if strings.TrimSpace(c.Export.SuffixPattern) == "" {
		c.Export.SuffixPattern = defaultExportSuffixPattern
	}
	if len(c.Match.JoinPriority) == 0 {
		c.Match.JoinPriority = defaultJoinPriority()
	}
	if len(c.Match.FallbackKeys) == 0 {
		c.Match.FallbackKeys = defaultFallbackKeys()
	}
	return nil
}

// EnsureDirectories creates the directories required for preset, state, and
// log persistence. The audit directory is created only when auditing is on.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.PresetDir, c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Paths.AuditDir) != "" {
		if err := os.MkdirAll(c.Paths.AuditDir, 0o755); err != nil {
			return fmt.Errorf("create audit directory %q: %w", c.Paths.AuditDir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
