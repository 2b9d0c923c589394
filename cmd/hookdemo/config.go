package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

type config struct {
	Routes []string `yaml:"routes"`
	// Style is one of auto, light, rounded, bright. auto picks bright on a
	// terminal.
	Style       string `yaml:"style"`
	Markup      bool   `yaml:"markup"`
	MarkupWidth int    `yaml:"markupWidth"`
}

func defaultConfig() *config {
	return &config{
		Style:       "auto",
		MarkupWidth: 72,
	}
}

func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	switch cfg.Style {
	case "", "auto", "light", "rounded", "bright":
	default:
		return nil, fmt.Errorf("parse config %s: unknown style %q", path, cfg.Style)
	}
	if cfg.MarkupWidth <= 0 {
		cfg.MarkupWidth = defaultConfig().MarkupWidth
	}
	return cfg, nil
}

func (cfg *config) tableStyle(terminal bool) table.Style {
	switch cfg.Style {
	case "light":
		return table.StyleLight
	case "rounded":
		return table.StyleRounded
	case "bright":
		return table.StyleColoredBright
	}
	if terminal {
		return table.StyleColoredBright
	}
	return table.StyleLight
}
