package config

const (
	defaultPresetDir           = "~/.local/share/slatelink/presets"
	defaultAuditDir            = "~/.local/share/slatelink/audit"
	defaultStateDir            = "~/.local/share/slatelink/state"
	defaultLogDir              = "~/.local/share/slatelink/logs"
	defaultMinConfidence       = 0.6
	defaultSafeMarginPct       = 5.0
	defaultSnapPct             = 1.0
	defaultMinFontPt           = 12
	defaultMaxRows             = 2
	defaultExportMode          = "skip"
	defaultExportSuffixPattern = "_{n}"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultJoinPriority() []string {
	return []string{"Name", "Filename", "File", "Clip Name", "Clip", "Basename"}
}

func defaultFallbackKeys() []string {
	return []string{"basename", "clip"}
}

func defaultSuggestedFields() []string {
	return []string{
		"Scene", "Take", "Camera", "TC Start", "Bin Name", "Episode",
		"Slate", "Roll", "Reel", "Timecode In", "Timecode Start", "Look", "LUT",
	}
}

func defaultInitialSelection() []string {
	return []string{"Scene", "Take", "Camera", "TC Start", "Bin Name", "Episode"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PresetDir: defaultPresetDir,
			AuditDir:  defaultAuditDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Match: Match{
			JoinPriority:  defaultJoinPriority(),
			FallbackKeys:  defaultFallbackKeys(),
			MinConfidence: defaultMinConfidence,
		},
		Overlay: Overlay{
			SafeMarginPct: defaultSafeMarginPct,
			SnapPct:       defaultSnapPct,
			MinFontPt:     defaultMinFontPt,
			MaxRows:       defaultMaxRows,
		},
		Dataset: Dataset{
			SuggestedFields:  defaultSuggestedFields(),
			InitialSelection: defaultInitialSelection(),
		},
		Export: Export{
			Mode:          defaultExportMode,
			SuffixPattern: defaultExportSuffixPattern,
		},
		Audit: Audit{
			Enabled: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
