package main

import (
	"log/slog"
	"strings"
	"sync"

	"slatelink/internal/config"
	"slatelink/internal/logging"
	"slatelink/internal/overlay"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, jsonFlag: jsonFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// resolver builds an overlay resolver from the configured geometry limits.
func (c *commandContext) resolver() overlay.Resolver {
	r := overlay.NewResolver()
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return r
	}
	if cfg.Overlay.MinFontPt > 0 {
		r.MinFontPt = cfg.Overlay.MinFontPt
	}
	if cfg.Overlay.SnapPct > 0 {
		r.GridStep = cfg.Overlay.SnapPct / 100
	}
	if cfg.Overlay.SafeMarginPct > 0 {
		r.SafeMargin = cfg.Overlay.SafeMarginPct / 100
	}
	return r
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
