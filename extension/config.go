package extension

import "time"

// Config holds configuration for the extension host. The mapstructure key is
// "modules", so the allow and deny lists are `modules.enabled` and
// `modules.disabled`, settable via MODULES_ENABLED / MODULES_DISABLED.
// Configuration is read once at construction and not hot-reloaded.
type Config struct {
	// Dir is the watched source directory.
	Dir string `mapstructure:"dir" default:"modules"`
	// Suffix marks loadable source files; the id is the name without it.
	Suffix string `mapstructure:"suffix" default:".json"`
	// IntervalSeconds is the detection cycle period.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"5"`
	// LoadTimeoutSeconds bounds construction of a single extension.
	LoadTimeoutSeconds int `mapstructure:"load_timeout_seconds" default:"30"`
	// Watch switches from polling scans to fsnotify events.
	Watch bool `mapstructure:"watch" default:"false"`
	// Enabled is the allow-list. Empty means no allow filtering.
	Enabled []string `mapstructure:"enabled" default:""`
	// Disabled is the deny-list. It takes precedence over Enabled.
	Disabled []string `mapstructure:"disabled" default:""`
}

// Interval returns the detection period as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// LoadTimeout returns the construction budget as a duration.
func (c Config) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSeconds) * time.Second
}
