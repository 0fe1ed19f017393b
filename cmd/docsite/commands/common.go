// Package commands implements the docsite CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve  ResolveCmd  `cmd:"" help:"Resolve a single document by version, slug, and locale"`
	Scan     ScanCmd     `cmd:"" help:"Scan a version corpus and print the document inventory"`
	Sidebar  SidebarCmd  `cmd:"" help:"Build and print the navigation tree for a version"`
	Versions VersionsCmd `cmd:"" help:"List available content versions"`
	History  HistoryCmd  `cmd:"" help:"Show persisted scan history for a version"`
	Serve    ServeCmd    `cmd:"" help:"Serve documents, sidebars, and metrics over HTTP"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file and applies the verbose override.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !root.Verbose {
		// Config-driven logging replaces the bootstrap logger.
		slog.SetDefault(cfg.Logging.NewLogger())
	}
	return cfg, nil
}
