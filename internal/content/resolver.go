package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/pathsafe"
)

// Content file extensions, tried in order.
var contentExtensions = []string{".mdx", ".md"}

// indexSlug is the sentinel slug for a bare version or locale root request.
const indexSlug = "index"

// Resolver locates and parses a single document for a (slug, version,
// locale) triple. All filesystem and parse failures surface as ErrNotFound;
// only path traversal is reported as its own error class.
type Resolver struct {
	root      string
	locales   *config.LocaleConfig
	validator *SecurityValidator
	recorder  metrics.Recorder
}

// NewResolver creates a resolver rooted at the content directory. A nil
// locale config selects single-locale mode; a nil recorder disables metrics.
func NewResolver(root string, locales *config.LocaleConfig, validator *SecurityValidator, recorder metrics.Recorder) *Resolver {
	if validator == nil {
		validator = NewSecurityValidator(SecurityPolicy{})
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Resolver{
		root:      root,
		locales:   locales,
		validator: validator,
		recorder:  recorder,
	}
}

// Resolve locates the content file backing slug within version, applying
// locale peeling and deterministic fallback. An explicitly requested
// non-default locale with no translated file yields ErrNotFound; missing
// translations are never silently served in another language.
func (r *Resolver) Resolve(ctx context.Context, slug, version, locale string) (*Document, error) {
	start := time.Now()
	defer func() {
		r.recorder.ObserveResolveDuration(version, time.Since(start))
	}()

	version, err := pathsafe.Sanitize(version)
	if err != nil {
		return nil, err
	}
	if version == "" {
		r.recorder.IncNotFound(version)
		return nil, fmt.Errorf("%w: empty version", ErrNotFound)
	}

	slug, err = pathsafe.Sanitize(slug)
	if err != nil {
		return nil, err
	}
	if slug == "" {
		slug = indexSlug
	}

	// Peel a leading locale segment off the slug.
	peeled := ""
	if r.locales != nil {
		head, rest, _ := strings.Cut(slug, "/")
		if r.locales.Has(head) {
			peeled = head
			slug = rest
			if slug == "" {
				slug = indexSlug
			}
		}
	}

	target := locale
	if target == "" {
		target = peeled
	}
	if target == "" && r.locales != nil {
		target = r.locales.DefaultLocale
	}
	if r.locales != nil && target != "" && !r.locales.Has(target) {
		r.recorder.IncNotFound(version)
		return nil, fmt.Errorf("%w: unknown locale %q", ErrNotFound, target)
	}

	if r.locales != nil {
		if doc, err := r.load(ctx, version, slug, slug+"."+target, target); err == nil {
			return doc, nil
		} else if err = asTraversal(err); err != nil {
			return nil, err
		}
	}

	// The undecorated file serves the default locale only.
	if r.locales == nil || r.locales.IsDefault(target) {
		if doc, err := r.load(ctx, version, slug, slug, target); err == nil {
			return doc, nil
		} else if err = asTraversal(err); err != nil {
			return nil, err
		}
	}

	r.recorder.IncNotFound(version)
	return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, slug, version)
}

// load attempts each content extension for one candidate file stem.
func (r *Resolver) load(ctx context.Context, version, logicalSlug, stem, locale string) (*Document, error) {
	for _, ext := range contentExtensions {
		rel := path.Join(version, stem+ext)
		full := filepath.Join(r.root, filepath.FromSlash(rel))
		if !pathsafe.IsWithin(full, r.root) {
			return nil, fmt.Errorf("%w: %s", pathsafe.ErrPathTraversal, rel)
		}
		if _, err := os.Stat(full); err != nil {
			continue
		}
		return r.build(ctx, full, version, logicalSlug, locale)
	}
	return nil, fmt.Errorf("%w: %s@%s", ErrNotFound, stem, version)
}

// build reads, parses, validates, and assembles one Document.
func (r *Resolver) build(_ context.Context, fullPath, version, logicalSlug, locale string) (*Document, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		slog.Debug("Unreadable content file", logfields.File(fullPath), logfields.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	fm, body, _, err := frontmatter.Split(data)
	if err != nil {
		slog.Warn("Malformed frontmatter", logfields.File(fullPath), logfields.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	fields, err := frontmatter.Decode(fm)
	if err != nil {
		slog.Warn("Malformed frontmatter", logfields.File(fullPath), logfields.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	meta := metaFromFields(fields)

	bodyText := string(body)
	result := r.validator.Validate(bodyText)
	if !result.Valid {
		r.recorder.IncSecurityViolation(version)
		if r.validator.Policy().Strict {
			slog.Warn("Document rejected by content security policy",
				logfields.File(fullPath),
				logfields.Version(version),
				slog.Int("findings", len(result.Findings)))
			return nil, fmt.Errorf("%w: %s", ErrContentSecurity, logicalSlug)
		}
		slog.Warn("Serving sanitized document body",
			logfields.File(fullPath),
			slog.Int("findings", len(result.Findings)))
	}
	bodyText = result.Sanitized

	meta.WordCount = countWords(bodyText)
	meta.ReadingTime = readingMinutes(meta.WordCount)
	meta.Locale = locale

	slug := logicalSlug
	if meta.Slug != "" {
		// A custom slug replaces only the final segment; folder placement
		// is governed by the file's on-disk location.
		override := path.Base(strings.Trim(meta.Slug, "/"))
		if dir := path.Dir(logicalSlug); dir != "." {
			slug = dir + "/" + override
		} else {
			slug = override
		}
	}
	slug = r.prefixLocale(slug, locale)

	title := meta.Title
	if title == "" {
		title = titleFromSlug(logicalSlug)
	}

	return &Document{
		Slug:        slug,
		FilePath:    logicalSlug,
		Title:       title,
		Description: meta.Description,
		Body:        bodyText,
		Locale:      locale,
		Meta:        meta,
	}, nil
}

// prefixLocale applies the routing prefix rule: non-default locales are
// always prefixed, the default only when the configuration demands it.
func (r *Resolver) prefixLocale(slug, locale string) string {
	if r.locales == nil || locale == "" {
		return slug
	}
	if !r.locales.IsDefault(locale) || r.locales.PrefixDefault {
		return locale + "/" + slug
	}
	return slug
}

// asTraversal returns err when it is a traversal error, nil otherwise. Used
// to let traversal escape the not-found conversion.
func asTraversal(err error) error {
	if errors.Is(err, pathsafe.ErrPathTraversal) {
		return err
	}
	return nil
}

// titleFromSlug derives a display title from the final slug segment.
func titleFromSlug(slug string) string {
	base := path.Base(slug)
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	runes := []rune(base)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
