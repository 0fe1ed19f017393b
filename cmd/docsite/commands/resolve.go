package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/service"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Version string `arg:"" help:"Content version directory, e.g. v2"`
	Slug    string `arg:"" help:"Document slug, optionally locale-prefixed"`
	Locale  string `short:"l" help:"Requested locale (defaults to the configured default)"`
	JSON    bool   `help:"Print the full document as JSON instead of a summary"`
}

func (r *ResolveCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	svc := service.New(cfg, metrics.NoopRecorder{})
	defer svc.Close()

	doc, err := svc.Resolve(context.Background(), r.Slug, r.Version, r.Locale)
	if err != nil {
		return fmt.Errorf("resolve %s/%s: %w", r.Version, r.Slug, err)
	}

	if r.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Printf("Slug:         %s\n", doc.Slug)
	fmt.Printf("Title:        %s\n", doc.Title)
	if doc.Description != "" {
		fmt.Printf("Description:  %s\n", doc.Description)
	}
	if doc.Locale != "" {
		fmt.Printf("Locale:       %s\n", doc.Locale)
	}
	fmt.Printf("Position:     %d\n", doc.Meta.Position())
	fmt.Printf("Reading time: %d min (%d words)\n", doc.Meta.ReadingTime, doc.Meta.WordCount)
	return nil
}
