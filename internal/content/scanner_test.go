package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, root string, interactive bool) *Scanner {
	t.Helper()
	locales := enFrLocales()
	resolver := NewResolver(root, locales, nil, nil)
	return NewScanner(root, resolver, locales, nil, interactive)
}

func TestScanner_ScanAll_MissingVersionDirectory_ReturnsEmptyCorpus(t *testing.T) {
	root := t.TempDir()

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v9", "")
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestScanner_ScanAll_TraversalVersion_ReturnsError(t *testing.T) {
	root := t.TempDir()

	s := newTestScanner(t, root, false)
	_, err := s.ScanAll(context.Background(), "../outside", "")
	require.Error(t, err)
}

func TestScanner_ScanAll_SortsByExplicitPosition(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/second.md", "---\ntitle: Second\nsidebar_position: 2\n---\n\nBody.\n")
	writeFile(t, root, "v1/unordered.md", "---\ntitle: Unordered\n---\n\nBody.\n")
	writeFile(t, root, "v1/first.md", "---\ntitle: First\norder: 1\n---\n\nBody.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	require.Equal(t, "First", docs[0].Title)
	require.Equal(t, "Second", docs[1].Title)
	require.Equal(t, "Unordered", docs[2].Title)
	require.Equal(t, UnorderedPosition, docs[2].Meta.Position())
}

func TestScanner_ScanAll_MalformedFileSkippedWithoutAborting(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/good.md", "---\ntitle: Good\n---\n\nBody.\n")
	writeFile(t, root, "v1/broken.md", "---\ntitle: [unclosed\n---\n\nBody.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "Good", docs[0].Title)
}

func TestScanner_ScanAll_DraftsExcludedInProduction(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/published.md", "---\ntitle: Published\n---\n\nBody.\n")
	writeFile(t, root, "v1/draft.md", "---\ntitle: Draft\ndraft: true\n---\n\nBody.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "Published", docs[0].Title)
}

func TestScanner_ScanAll_DraftsIncludedInInteractiveMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/draft.md", "---\ntitle: Draft\ndraft: true\n---\n\nBody.\n")

	s := newTestScanner(t, root, true)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestScanner_ScanAll_DeduplicatesPreferringTargetLocale(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/guide.md", "---\ntitle: Guide\n---\n\nEnglish.\n")
	writeFile(t, root, "v1/guide.fr.md", "---\ntitle: Le guide\n---\n\nFrancais.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "fr")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "fr", docs[0].Locale)
	require.Equal(t, "Le guide", docs[0].Title)
}

func TestScanner_ScanAll_DefaultLocaleKeptWhenTranslationMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/guide.md", "---\ntitle: Guide\n---\n\nEnglish.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "fr")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "en", docs[0].Locale)
}

func TestScanner_ScanAll_SkipsHiddenAndCategoryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/guide.md", "---\ntitle: Guide\n---\n\nBody.\n")
	writeFile(t, root, "v1/.hidden.md", "---\ntitle: Hidden\n---\n\nBody.\n")
	writeFile(t, root, "v1/_category_.yml", "label: Guides\n")
	writeFile(t, root, "v1/.git/blob.md", "not content\n")
	writeFile(t, root, "v1/notes.txt", "not content\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "Guide", docs[0].Title)
}

func TestScanner_ScanAll_AppliesNearestCategoryAnnotations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v1/api/_category_.yml", "label: API Reference\nposition: 3\ncollapsed: true\ntab_group: reference\n")
	writeFile(t, root, "v1/api/auth.md", "---\ntitle: Auth\n---\n\nBody.\n")
	writeFile(t, root, "v1/api/deep/tokens.md", "---\ntitle: Tokens\n---\n\nBody.\n")

	s := newTestScanner(t, root, false)
	docs, err := s.ScanAll(context.Background(), "v1", "")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		require.Equal(t, "API Reference", doc.Category.Label)
		require.Equal(t, 3, doc.Category.Position)
		require.True(t, doc.Category.Collapsed)
		require.Equal(t, "reference", doc.TabGroup())
	}
}

func TestScanner_ListVersions_SortedNonHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "v2/guide.md", "x\n")
	writeFile(t, root, "v1/guide.md", "x\n")
	writeFile(t, root, ".hidden/guide.md", "x\n")
	writeFile(t, root, "stray.md", "x\n")

	s := newTestScanner(t, root, false)
	versions, err := s.ListVersions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"v1", "v2"}, versions)
}

func TestScanner_ListVersions_MissingRoot_ReturnsEmpty(t *testing.T) {
	s := newTestScanner(t, "/nonexistent/content/root", false)
	versions, err := s.ListVersions(context.Background())
	require.NoError(t, err)
	require.Empty(t, versions)
}
