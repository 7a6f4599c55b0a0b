package config

import (
	"slices"
	"time"

	"github.com/ziadkadry99/pageshell/internal/router"
)

// DefaultExcludes are glob patterns skipped when loading a content directory.
var DefaultExcludes = []string{
	"drafts/**",
	"node_modules/**",
	"README.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName:          "Pageshell",
		HomeRoute:         router.DefaultHome,
		Include:           []string{"**/*.md"},
		Exclude:           slices.Clone(DefaultExcludes),
		Renderer:          RendererBuiltin,
		NavigationDelayMS: int(router.DefaultDelay / time.Millisecond),
		DateFormat:        router.DefaultDateFormat,
		LogLevel:          "info",
		OutputDir:         "site",
		Server: ServerConfig{
			Port:      8080,
			HistoryDB: ".pageshell/history.db",
		},
	}
}

// NavigationDelay returns the configured delay as a duration.
func (c *Config) NavigationDelay() time.Duration {
	return time.Duration(c.NavigationDelayMS) * time.Millisecond
}
