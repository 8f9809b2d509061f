package config

const (
	// ToolSourceSystem resolves binaries from PATH; ToolSourceManaged
	// uses the managed tools directory populated by `gifclip setup`.
	ToolSourceSystem  = "system"
	ToolSourceManaged = "managed"

	defaultManagedDir = "~/.local/share/gifclip/tools"
	defaultStagingDir = "~/.local/share/gifclip/staging"
	defaultHistory    = "~/.local/share/gifclip/history.db"

	defaultFormat   = "gif"
	defaultWidth    = 480
	defaultFPS      = 15
	defaultQuality  = 80
	defaultLanguage = "en"

	defaultLogFormat = "auto"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Source:     ToolSourceSystem,
			ManagedDir: defaultManagedDir,
		},
		Paths: Paths{
			StagingDir: defaultStagingDir,
		},
		Defaults: Defaults{
			Format:   defaultFormat,
			Width:    defaultWidth,
			FPS:      defaultFPS,
			Quality:  defaultQuality,
			Language: defaultLanguage,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistory,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
