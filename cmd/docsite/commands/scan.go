package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/manifest"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/service"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct {
	Version string `arg:"" help:"Content version directory to scan"`
	Locale  string `short:"l" help:"Target locale (defaults to the configured default)"`
	Store   bool   `help:"Persist the scan result to the configured manifest store"`
}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	svc := service.New(cfg, metrics.NoopRecorder{})
	defer svc.Close()

	ctx := context.Background()
	docs, err := svc.Scan(ctx, s.Version, s.Locale)
	if err != nil {
		return fmt.Errorf("scan %s: %w", s.Version, err)
	}

	for _, doc := range docs {
		fmt.Printf("%4d  %-40s  %s\n", doc.Meta.Position(), doc.Slug, doc.Title)
	}
	fmt.Printf("\n%d documents\n", len(docs))

	if !s.Store {
		return nil
	}
	if cfg.Manifest.Path == "" {
		return fmt.Errorf("manifest store requested but manifest.path is not configured")
	}

	store, err := manifest.Open(cfg.Manifest.Path)
	if err != nil {
		return fmt.Errorf("open manifest store: %w", err)
	}
	defer func() { _ = store.Close() }()

	rec := manifest.Record{
		ID:        uuid.NewString(),
		Version:   s.Version,
		Locale:    s.Locale,
		CommitSHA: manifest.HeadCommit(cfg.ContentDir),
		DocCount:  len(docs),
		CreatedAt: time.Now().UTC(),
	}
	if err := store.SaveScan(ctx, rec, docs); err != nil {
		return fmt.Errorf("save scan: %w", err)
	}
	slog.Info("Scan persisted", logfields.ScanID(rec.ID), logfields.Version(s.Version), logfields.DocCount(len(docs)))
	return nil
}
