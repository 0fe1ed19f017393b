package commands

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/service"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// SidebarCmd implements the 'sidebar' command.
type SidebarCmd struct {
	Version string `arg:"" help:"Content version directory"`
	Locale  string `short:"l" help:"Target locale (defaults to the configured default)"`
	Tab     string `short:"t" help:"Restrict output to one tab group"`
}

func (s *SidebarCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	svc := service.New(cfg, metrics.NoopRecorder{})
	defer svc.Close()

	docs, err := svc.Scan(context.Background(), s.Version, s.Locale)
	if err != nil {
		return fmt.Errorf("scan %s: %w", s.Version, err)
	}
	if s.Tab != "" {
		docs = sidebar.FilterByTabGroup(docs, s.Tab, cfg.Sidebar.UntaggedInFirstTabEnabled())
	}

	tree := sidebar.BuildTree(docs)
	for _, doc := range tree.Standalone {
		printLeaf(doc, 0)
	}
	for _, g := range sidebar.OrderedRoots(tree) {
		printGroup(tree, g, 0)
	}
	return nil
}

func printGroup(t *sidebar.Tree, g *sidebar.Group, depth int) {
	fmt.Printf("%s%s/  (%d)\n", strings.Repeat("  ", depth), g.Label, g.Position)
	for _, child := range sidebar.OrderedChildren(t, g) {
		printGroup(t, child, depth+1)
	}
	for _, doc := range g.OrderedDocuments() {
		printLeaf(doc, depth+1)
	}
}

func printLeaf(doc *content.Document, depth int) {
	fmt.Printf("%s%s  [%s]\n", strings.Repeat("  ", depth), doc.Title, doc.Slug)
}
