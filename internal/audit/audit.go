// Package audit appends a JSON-lines record of export and preset activity,
// one file per session. Disabled loggers discard everything, so call sites
// never need to guard.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

const appVersion = "slatelink 0.1"

// Logger writes audit events for one session. The zero value is a disabled
// logger; construct enabled ones with New.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	session string
	now     func() time.Time
}

// New opens a session audit file under dir named by UTC timestamp. When
// enabled is false no file is created and every Log call is a no-op.
func New(dir string, enabled bool) (*Logger, error) {
	if !enabled {
		return &Logger{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	now := time.Now().UTC()
	path := filepath.Join(dir, fmt.Sprintf("audit_%s.jsonl", now.Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit file: %w", err)
	}

	return &Logger{file: file, session: uuid.NewString(), now: time.Now}, nil
}

// Enabled reports whether this logger writes anywhere.
func (l *Logger) Enabled() bool {
	return l.file != nil
}

// Session returns the session identifier stamped on every event, "" when
// disabled.
func (l *Logger) Session() string {
	return l.session
}

// Path returns the session file path, "" when disabled.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close flushes and closes the session file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Log appends one event. Fields merge into the entry alongside the standard
// envelope (event name, UTC timestamp, session, OS, app version).
func (l *Logger) Log(event string, fields map[string]any) error {
	if l.file == nil {
		return nil
	}

	entry := map[string]any{
		"event":       event,
		"timestamp":   l.now().UTC().Format(time.RFC3339),
		"session":     l.session,
		"os":          runtime.GOOS,
		"arch":        runtime.GOARCH,
		"app_version": appVersion,
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogExport records one sidecar export with its provenance.
func (l *Logger) LogExport(imagePath, csvPath string, selectedFields []string, imageSHA, csvSHA, joinKey, precedence string) error {
	return l.Log("export", map[string]any{
		"image_path":      imagePath,
		"csv_path":        csvPath,
		"selected_fields": selectedFields,
		"image_sha256":    imageSHA,
		"csv_sha256":      csvSHA,
		"join_key":        joinKey,
		"precedence_used": precedence,
	})
}

// LogPresetSave records a preset write.
func (l *Logger) LogPresetSave(name string, fields []string) error {
	return l.Log("preset_save", map[string]any{
		"preset_name": name,
		"fields":      fields,
	})
}

// LogBatch records a multi-image operation.
func (l *Logger) LogBatch(imageCount int, presetName string) error {
	return l.Log("batch_apply", map[string]any{
		"image_count": imageCount,
		"preset_name": presetName,
	})
}
