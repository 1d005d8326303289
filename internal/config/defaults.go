package config

const (
	defaultBind                = ":3000"
	defaultDownloadDir         = "~/.local/share/tubeconv/downloads"
	defaultLogDir              = "~/.local/share/tubeconv/logs"
	defaultYtdlpBinary         = "yt-dlp"
	defaultFetchTimeoutSeconds = 300
	defaultMaxConcurrent       = 3
	defaultMinFreeMB           = 512
	defaultSweepIntervalHours  = 24
	defaultMaxAgeHours         = 48
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultHistoryPath         = "~/.local/share/tubeconv/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			LogDir:      defaultLogDir,
		},
		Pipeline: Pipeline{
			YtdlpBinary:         defaultYtdlpBinary,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			MaxConcurrent:       defaultMaxConcurrent,
			MinFreeMB:           defaultMinFreeMB,
		},
		Retention: Retention{
			SweepIntervalHours: defaultSweepIntervalHours,
			MaxAgeHours:        defaultMaxAgeHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
