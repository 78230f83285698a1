package config

const (
	defaultDataDir           = "~/.local/share/presskit"
	defaultLogDir            = "~/.local/share/presskit/logs"
	defaultStorageFolder     = "releases"
	defaultRequestTimeout    = 30
	defaultUploadConcurrency = 4
	defaultMaxAudioMiB       = 200
	defaultMaxImageMiB       = 25
	defaultMinCoverArtPx     = 3000
	defaultNtfyTimeout       = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Folder:         defaultStorageFolder,
			RequestTimeout: defaultRequestTimeout,
		},
		Catalog: Catalog{
			RequestTimeout: defaultRequestTimeout,
		},
		Uploads: Uploads{
			Concurrency:   defaultUploadConcurrency,
			MaxAudioMiB:   defaultMaxAudioMiB,
			MaxImageMiB:   defaultMaxImageMiB,
			MinCoverArtPx: defaultMinCoverArtPx,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
