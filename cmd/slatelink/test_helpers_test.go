package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeTestConfig writes a config pointing every path at the test's temp
// space and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	content := fmt.Sprintf(`[paths]
preset_dir = %q
audit_dir = %q
state_dir = %q
log_dir = %q

[logging]
format = "console"
level = "warn"
`,
		filepath.Join(root, "presets"),
		filepath.Join(root, "audit"),
		filepath.Join(root, "state"),
		filepath.Join(root, "logs"),
	)
	path := filepath.Join(root, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runCommand executes the CLI with args and returns its stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

const sampleCSV = `Name,Scene,Take,TC Start,Notes
IMG_0001.jpg,12A,1,01:00:00:00,hold for sound
IMG_0002.jpg,12A,2,01:00:42:10,
Dunes_0042.jpg,40,1,02:10:00:00,magic hour
`
