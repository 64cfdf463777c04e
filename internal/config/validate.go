package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateOverlay(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateMatch() error {
	if c.Match.MinConfidence < 0 || c.Match.MinConfidence > 1 {
		return fmt.Errorf("match.min_confidence must be between 0 and 1, got %v", c.Match.MinConfidence)
	}
	for _, key := range c.Match.JoinPriority {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("match.join_priority must not contain blank entries")
		}
	}
	return nil
}

func (c *Config) validateOverlay() error {
	if c.Overlay.SafeMarginPct < 0 || c.Overlay.SafeMarginPct >= 50 {
		return fmt.Errorf("overlay.safe_margin_pct must be in [0, 50), got %v", c.Overlay.SafeMarginPct)
	}
	if c.Overlay.SnapPct <= 0 || c.Overlay.SnapPct > 25 {
		return fmt.Errorf("overlay.snap_pct must be in (0, 25], got %v", c.Overlay.SnapPct)
	}
	if c.Overlay.MinFontPt < 1 {
		return fmt.Errorf("overlay.min_font_pt must be positive, got %d", c.Overlay.MinFontPt)
	}
	if c.Overlay.MaxRows < 1 {
		return fmt.Errorf("overlay.max_rows must be positive, got %d", c.Overlay.MaxRows)
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Mode {
	case "skip", "overwrite", "suffix":
		return nil
	default:
		return fmt.Errorf("export.mode must be one of skip, overwrite, suffix; got %q", c.Export.Mode)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error; got %q", c.Logging.Level)
	}
	return nil
}
