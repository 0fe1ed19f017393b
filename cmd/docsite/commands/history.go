package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/manifest"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Version string `arg:"" help:"Content version to show scan history for"`
	Limit   int    `short:"n" help:"Maximum number of records" default:"20"`
	Docs    string `help:"Show the document inventory of one scan ID instead"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.Manifest.Path == "" {
		return fmt.Errorf("manifest.path is not configured")
	}

	store, err := manifest.Open(cfg.Manifest.Path)
	if err != nil {
		return fmt.Errorf("open manifest store: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.Docs != "" {
		rows, err := store.Documents(ctx, h.Docs)
		if err != nil {
			return fmt.Errorf("load scan documents: %w", err)
		}
		for _, row := range rows {
			fmt.Printf("%4d  %-40s  %s\n", row.Position, row.Slug, row.Title)
		}
		return nil
	}

	records, err := store.History(ctx, h.Version, h.Limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for _, rec := range records {
		commit := rec.CommitSHA
		if len(commit) > 8 {
			commit = commit[:8]
		}
		fmt.Printf("%s  %s  %-8s  %4d docs  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.ID, commit, rec.DocCount, rec.Locale)
	}
	return nil
}
