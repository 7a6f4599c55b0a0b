package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/pageshell/internal/config"
	"github.com/ziadkadry99/pageshell/internal/content"
	"github.com/ziadkadry99/pageshell/internal/logging"
	"github.com/ziadkadry99/pageshell/internal/markdown"
	"github.com/ziadkadry99/pageshell/internal/router"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pageshell init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(level)
}

// buildTable loads the route table described by cfg.
func buildTable(cfg *config.Config) (*content.Table, error) {
	table, err := content.Load(content.Options{
		File:      cfg.ContentFile,
		Dir:       cfg.ContentDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		RootLabel: "Home",
	})
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return table, nil
}

// renderConfig assembles the page renderer settings from cfg.
func renderConfig(cfg *config.Config) (router.RenderConfig, error) {
	conv, err := markdown.New(markdown.Engine(cfg.Renderer))
	if err != nil {
		return router.RenderConfig{}, err
	}
	return router.RenderConfig{
		SiteName:   cfg.SiteName,
		Converter:  conv,
		DateFormat: cfg.DateFormat,
		Sanitize:   cfg.Sanitize,
	}, nil
}

// loadSite is the common prelude of commands that work on the route table.
func loadSite() (*config.Config, *content.Table, router.RenderConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, router.RenderConfig{}, err
	}
	table, err := buildTable(cfg)
	if err != nil {
		return nil, nil, router.RenderConfig{}, err
	}
	rc, err := renderConfig(cfg)
	if err != nil {
		return nil, nil, router.RenderConfig{}, err
	}
	return cfg, table, rc, nil
}
