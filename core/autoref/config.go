package autoref

// Config holds the engine settings.
type Config struct {
	// CacheMetadata memoizes type metadata between syncs.
	CacheMetadata bool `mapstructure:"cache_metadata" default:"true"`
	// FormatMessages renders diagnostics with terminal styling in command output.
	FormatMessages bool `mapstructure:"format_messages" default:"true"`
	// Live reports every sync as unsupported, as when the host is running the scene.
	Live bool `mapstructure:"live" default:"false"`
}
