package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Errorf("output:\n%s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	// Refuses to clobber without --overwrite.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Error("second init without --overwrite succeeded")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Errorf("init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{
		"Config path:",
		"Join priority:  Name, Filename, File, Clip Name, Clip, Basename",
		"Min confidence: 0.60",
		"Export mode:    skip",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
