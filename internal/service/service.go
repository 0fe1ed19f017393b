// Package service composes the resolver, scanner, sidebar builder, and
// cache store behind one entry point used by the CLI and serve mode.
package service

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsite/internal/cache"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Service is the cached documentation engine for one content root,
// constructed once per process.
type Service struct {
	cfg       *config.Config
	resolver  *content.Resolver
	scanner   *content.Scanner
	store     *cache.Store
	publisher cache.ChangePublisher
}

// Option customizes Service construction.
type Option func(*Service)

// WithPublisher forwards watch-driven change events to a publisher.
func WithPublisher(p cache.ChangePublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New builds a Service from configuration. The recorder may be nil.
func New(cfg *config.Config, recorder metrics.Recorder, opts ...Option) *Service {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	validator := content.NewSecurityValidator(content.SecurityPolicy{
		Strict:         cfg.Security.Strict,
		BlockDangerous: cfg.Security.BlockDangerous,
	})
	resolver := content.NewResolver(cfg.ContentDir, cfg.Locale, validator, recorder)
	scanner := content.NewScanner(cfg.ContentDir, resolver, cfg.Locale, recorder, cfg.Interactive())
	store := cache.NewStore(cache.Options{
		TTL:      cfg.EffectiveTTL(),
		Recorder: recorder,
	})

	s := &Service{
		cfg:      cfg,
		resolver: resolver,
		scanner:  scanner,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureWatch starts filesystem-watch invalidation on first use. Safe to
// call from every request; initialization happens exactly once per process.
func (s *Service) ensureWatch() {
	if !s.cfg.Cache.Watch {
		return
	}
	if err := s.store.EnsureWatch(s.cfg.ContentDir, s.publisher); err != nil {
		slog.Warn("Content watch unavailable, relying on TTL expiry", logfields.Error(err))
	}
}

// Resolve returns the document for (slug, version, locale) through the
// cache.
func (s *Service) Resolve(ctx context.Context, slug, version, locale string) (*content.Document, error) {
	s.ensureWatch()
	return s.store.Document(ctx, version, slug, locale, func(ctx context.Context) (*content.Document, error) {
		return s.resolver.Resolve(ctx, slug, version, locale)
	})
}

// Scan returns the full corpus for (version, locale) through the cache.
func (s *Service) Scan(ctx context.Context, version, locale string) ([]*content.Document, error) {
	s.ensureWatch()
	return s.store.Corpus(ctx, version, locale, func(ctx context.Context) ([]*content.Document, error) {
		return s.scanner.ScanAll(ctx, version, locale)
	})
}

// Versions lists version directories through the cache.
func (s *Service) Versions(ctx context.Context) ([]string, error) {
	s.ensureWatch()
	return s.store.Versions(ctx, s.scanner.ListVersions)
}

// Sidebar builds the navigation tree for a version corpus.
func (s *Service) Sidebar(ctx context.Context, version, locale string) (*sidebar.Tree, []*content.Document, error) {
	docs, err := s.Scan(ctx, version, locale)
	if err != nil {
		return nil, nil, err
	}
	tree := sidebar.BuildTree(docs)
	return tree, sidebar.Flatten(tree), nil
}

// Adjacent returns the prev/next documents for slug within the version's
// flattened, tab-scoped order.
func (s *Service) Adjacent(ctx context.Context, slug, version, locale string) (prev, next *content.Document, err error) {
	_, ordered, err := s.Sidebar(ctx, version, locale)
	if err != nil {
		return nil, nil, err
	}
	prev, next = sidebar.Adjacent(slug, ordered)
	return prev, next, nil
}

// Store exposes the cache store for sweep scheduling.
func (s *Service) Store() *cache.Store {
	return s.store
}

// Close releases the watcher.
func (s *Service) Close() error {
	return s.store.Close()
}
