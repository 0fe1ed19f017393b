package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/parallel"
	"git.home.luguber.info/inful/docsite/internal/pathsafe"
)

// DefaultScanConcurrency bounds per-file resolution fan-out during a scan.
const DefaultScanConcurrency = 8

// Scanner walks a version's content tree and resolves every file into a
// deduplicated, position-ordered document corpus.
type Scanner struct {
	root        string
	resolver    *Resolver
	locales     *config.LocaleConfig
	recorder    metrics.Recorder
	interactive bool
	concurrency int
}

// NewScanner creates a scanner sharing the resolver's content root. In
// interactive (development) mode draft documents are included.
func NewScanner(root string, resolver *Resolver, locales *config.LocaleConfig, recorder metrics.Recorder, interactive bool) *Scanner {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Scanner{
		root:        root,
		resolver:    resolver,
		locales:     locales,
		recorder:    recorder,
		interactive: interactive,
		concurrency: DefaultScanConcurrency,
	}
}

// candidate is one discovered content file awaiting resolution.
type candidate struct {
	logicalPath string
	locale      string
}

// ScanAll resolves every content file under version, deduplicates by logical
// slug with locale fallback, overlays category metadata, and sorts by
// explicit ordering hints. A missing version directory is a valid, empty
// corpus.
func (s *Scanner) ScanAll(ctx context.Context, version, targetLocale string) ([]*Document, error) {
	start := time.Now()
	defer func() {
		s.recorder.ObserveScanDuration(version, time.Since(start))
	}()

	version, err := pathsafe.Sanitize(version)
	if err != nil {
		return nil, err
	}

	versionRoot := filepath.Join(s.root, filepath.FromSlash(version))
	if _, err := os.Stat(versionRoot); err != nil {
		return []*Document{}, nil
	}

	if targetLocale == "" && s.locales != nil {
		targetLocale = s.locales.DefaultLocale
	}

	scanID := uuid.NewString()
	slog.Debug("Starting corpus scan",
		logfields.ScanID(scanID),
		logfields.Version(version),
		logfields.Locale(targetLocale))

	candidates := s.discover(versionRoot)
	descriptors := LoadCategories(versionRoot)

	// Fan out resolutions; the dedup merge below runs strictly after all
	// results are gathered, keeping the last-write-wins locale preference
	// deterministic.
	results := parallel.MapOrdered(candidates, s.concurrency, func(c candidate) (*Document, error) {
		return s.resolver.Resolve(ctx, c.logicalPath, version, c.locale)
	})

	byLogicalSlug := map[string]int{}
	docs := make([]*Document, 0, len(results))
	for i, res := range results {
		if res.Err != nil {
			slog.Debug("Skipping unresolvable file",
				logfields.ScanID(scanID),
				logfields.Slug(candidates[i].logicalPath),
				logfields.Error(res.Err))
			continue
		}
		doc := res.Value

		if desc := nearestCategory(descriptors, doc.Folder()); desc != nil {
			applyCategory(doc, desc)
		}

		if doc.Meta.Draft && !s.interactive {
			continue
		}

		existing, seen := byLogicalSlug[doc.FilePath]
		if !seen {
			byLogicalSlug[doc.FilePath] = len(docs)
			docs = append(docs, doc)
			continue
		}
		// A document in the target locale always replaces a stored
		// default-locale duplicate; everything else keeps the first hit.
		if doc.Locale == targetLocale && docs[existing].Locale != targetLocale {
			docs[existing] = doc
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Meta.Position() < docs[j].Meta.Position()
	})

	slog.Info("Corpus scan complete",
		logfields.ScanID(scanID),
		logfields.Version(version),
		logfields.DocCount(len(docs)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	return docs, nil
}

// ListVersions enumerates version directories under the content root.
func (s *Scanner) ListVersions(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// discover walks the version tree and derives each content file's logical
// path and file locale. Hidden files and category descriptors are skipped.
func (s *Scanner) discover(versionRoot string) []candidate {
	var candidates []candidate

	_ = filepath.WalkDir(versionRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtree, skip
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != versionRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || isCategoryFile(d.Name()) {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if !isContentExtension(ext) {
			return nil
		}

		rel, err := filepath.Rel(versionRoot, path)
		if err != nil {
			return nil //nolint:nilerr
		}
		logical := filepath.ToSlash(strings.TrimSuffix(rel, ext))
		locale := ""
		if s.locales != nil {
			if idx := strings.LastIndex(logical, "."); idx >= 0 {
				if suffix := logical[idx+1:]; s.locales.Has(suffix) {
					locale = suffix
					logical = logical[:idx]
				}
			}
		}

		candidates = append(candidates, candidate{logicalPath: logical, locale: locale})
		return nil
	})

	return candidates
}

func applyCategory(doc *Document, desc *CategoryDescriptor) {
	doc.Category = CategoryAnnotations{
		Label:       desc.Label,
		Position:    desc.EffectivePosition(),
		Collapsible: desc.Collapsible == nil || *desc.Collapsible,
		Collapsed:   desc.Collapsed != nil && *desc.Collapsed,
		Icon:        desc.Icon,
		TabGroup:    desc.TabGroup,
	}
}

func isContentExtension(ext string) bool {
	for _, candidate := range contentExtensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

