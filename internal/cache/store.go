// Package cache memoizes content resolution and corpus scans with TTL
// expiry and filesystem-watch-driven invalidation.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// versionsKey caches the version-directory listing.
const versionsKey = "versions"

type entry[T any] struct {
	value  T
	stored time.Time
}

// Options configures a Store. The zero value of Clock selects the real
// clock; a nil Recorder disables metrics.
type Options struct {
	TTL      time.Duration
	Clock    clockwork.Clock
	Recorder metrics.Recorder
}

// Store is an explicit cache object constructed once per process and passed
// by reference. It carries no package-level state; the clock is injected so
// TTL behavior is testable without real waits.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	clock    clockwork.Clock
	recorder metrics.Recorder

	documents map[string]entry[*content.Document]
	corpora   map[string]entry[[]*content.Document]
	versions  map[string]entry[[]string]

	watchOnce sync.Once
	watcher   *Watcher
}

// NewStore creates an empty cache store.
func NewStore(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Store{
		ttl:       opts.TTL,
		clock:     opts.Clock,
		recorder:  opts.Recorder,
		documents: map[string]entry[*content.Document]{},
		corpora:   map[string]entry[[]*content.Document]{},
		versions:  map[string]entry[[]string]{},
	}
}

// DocumentKey builds the cache key for a single-document resolution.
func DocumentKey(version, slug, locale string) string {
	key := version + ":" + slug
	if locale != "" {
		key += "@" + locale
	}
	return key
}

// CorpusKey builds the cache key for a full corpus scan.
func CorpusKey(version, locale string) string {
	if locale == "" {
		return version
	}
	return version + "@" + locale
}

// Document returns the cached resolution for (version, slug, locale) or
// populates it via load. The not-found outcome is not cached; a missing
// document stays a cheap filesystem probe.
func (s *Store) Document(ctx context.Context, version, slug, locale string, load func(context.Context) (*content.Document, error)) (*content.Document, error) {
	key := DocumentKey(version, slug, locale)
	if doc, ok := lookup(s, s.documents, key); ok {
		return doc, nil
	}

	doc, err := load(ctx)
	if err != nil {
		return nil, err
	}
	store(s, s.documents, key, doc)
	return doc, nil
}

// Corpus returns the cached scan for (version, locale) or populates it via
// load.
func (s *Store) Corpus(ctx context.Context, version, locale string, load func(context.Context) ([]*content.Document, error)) ([]*content.Document, error) {
	key := CorpusKey(version, locale)
	if docs, ok := lookup(s, s.corpora, key); ok {
		return docs, nil
	}

	docs, err := load(ctx)
	if err != nil {
		return nil, err
	}
	store(s, s.corpora, key, docs)
	return docs, nil
}

// Versions returns the cached version list or populates it via load.
func (s *Store) Versions(ctx context.Context, load func(context.Context) ([]string, error)) ([]string, error) {
	if versions, ok := lookup(s, s.versions, versionsKey); ok {
		return versions, nil
	}

	versions, err := load(ctx)
	if err != nil {
		return nil, err
	}
	store(s, s.versions, versionsKey, versions)
	return versions, nil
}

// lookup reads one entry, treating expiry as a miss and evicting the stale
// entry immediately.
func lookup[T any](s *Store, m map[string]entry[T], key string) (T, bool) {
	s.mu.RLock()
	e, ok := m[key]
	s.mu.RUnlock()

	if ok && s.clock.Since(e.stored) < s.ttl {
		s.recorder.IncCacheOp(metrics.CacheHit, key)
		return e.value, true
	}
	if ok {
		s.mu.Lock()
		delete(m, key)
		s.mu.Unlock()
		slog.Debug("Evicting expired cache entry", logfields.CacheKey(key))
	}
	s.recorder.IncCacheOp(metrics.CacheMiss, key)
	var zero T
	return zero, false
}

func store[T any](s *Store, m map[string]entry[T], key string, value T) {
	s.mu.Lock()
	m[key] = entry[T]{value: value, stored: s.clock.Now()}
	s.mu.Unlock()
}

// InvalidateVersion removes the corpus entries for a version and every
// document entry keyed under it. Entries are removed, not marked stale.
func (s *Store) InvalidateVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.corpora {
		if key == version || strings.HasPrefix(key, version+"@") {
			delete(s.corpora, key)
			s.recorder.IncCacheOp(metrics.CacheEvict, key)
		}
	}
	docPrefix := version + ":"
	for key := range s.documents {
		if strings.HasPrefix(key, docPrefix) {
			delete(s.documents, key)
			s.recorder.IncCacheOp(metrics.CacheEvict, key)
		}
	}
}

// InvalidateVersionList drops the cached version-directory listing.
func (s *Store) InvalidateVersionList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.versions[versionsKey]; ok {
		delete(s.versions, versionsKey)
		s.recorder.IncCacheOp(metrics.CacheEvict, versionsKey)
	}
}

// Sweep removes every expired entry and returns the count. Intended for a
// periodic scheduler; correctness never depends on it since lookups evict
// expired entries on access.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	removed += sweepMap(s, s.documents)
	removed += sweepMap(s, s.corpora)
	removed += sweepMap(s, s.versions)
	return removed
}

func sweepMap[T any](s *Store, m map[string]entry[T]) int {
	removed := 0
	for key, e := range m {
		if s.clock.Since(e.stored) >= s.ttl {
			delete(m, key)
			removed++
		}
	}
	return removed
}

// Len returns the total number of live entries (including not-yet-swept
// expired ones).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents) + len(s.corpora) + len(s.versions)
}

// EnsureWatch starts filesystem-watch invalidation over the content root.
// Calling it from every request is safe: the watcher is initialized exactly
// once per Store and shared thereafter. The returned error reports only the
// first initialization attempt; later calls return nil.
func (s *Store) EnsureWatch(root string, publisher ChangePublisher) error {
	var err error
	s.watchOnce.Do(func() {
		var w *Watcher
		w, err = NewWatcher(root, s, publisher)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.watcher = w
		s.mu.Unlock()
		w.Start()
	})
	return err
}

// ActiveWatcher returns the running watcher, nil before EnsureWatch
// succeeds.
func (s *Store) ActiveWatcher() *Watcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watcher
}

// Close stops the watcher if one was started.
func (s *Store) Close() error {
	if w := s.ActiveWatcher(); w != nil {
		return w.Close()
	}
	return nil
}
