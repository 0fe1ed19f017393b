package sidebar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/content"
)

func intPtr(n int) *int { return &n }

func doc(filePath, title string, position *int) *content.Document {
	return &content.Document{
		Slug:     filePath,
		FilePath: filePath,
		Title:    title,
		Meta:     content.Meta{SidebarPosition: position},
	}
}

func tabbedDoc(filePath, title, tab string) *content.Document {
	d := doc(filePath, title, nil)
	d.Meta.TabGroup = tab
	return d
}

func TestBuildTree_RootDocumentsAreStandalone(t *testing.T) {
	docs := []*content.Document{
		doc("intro", "Intro", intPtr(1)),
		doc("guides/setup", "Setup", nil),
	}

	tree := BuildTree(docs)
	require.Len(t, tree.Standalone, 1)
	require.Equal(t, "Intro", tree.Standalone[0].Title)
	require.Contains(t, tree.Groups, "guides")
	require.Len(t, tree.Groups["guides"].Documents, 1)
}

func TestBuildTree_NestedFoldersMaterializeAncestors(t *testing.T) {
	docs := []*content.Document{
		doc("api/deep/tokens", "Tokens", nil),
	}

	tree := BuildTree(docs)
	require.Contains(t, tree.Groups, "api")
	require.Contains(t, tree.Groups, "api/deep")
	require.Equal(t, []string{"api"}, tree.RootPaths)
	require.Equal(t, []string{"api/deep"}, tree.Groups["api"].Children)
}

func TestBuildTree_IndexDocumentConfiguresGroup(t *testing.T) {
	index := doc("guides/index", "All Guides", intPtr(2))
	index.Meta.Icon = "book"
	docs := []*content.Document{
		index,
		doc("guides/setup", "Setup", nil),
	}

	tree := BuildTree(docs)
	g := tree.Groups["guides"]
	require.Equal(t, "All Guides", g.Label)
	require.Equal(t, 2, g.Position)
	require.Equal(t, "book", g.Icon)
	// The index page itself is not a leaf.
	require.Len(t, g.Documents, 1)
	require.Equal(t, "Setup", g.Documents[0].Title)
}

func TestBuildTree_UnpositionedIndexKeepsCategoryPosition(t *testing.T) {
	leaf := doc("guides/setup", "Setup", intPtr(1))
	leaf.Category = content.CategoryAnnotations{Position: 3, Collapsible: true}
	index := doc("guides/index", "Guides", nil)

	// The category position must win regardless of which document the
	// builder sees first.
	for _, docs := range [][]*content.Document{
		{leaf, index},
		{index, leaf},
	} {
		tree := BuildTree(docs)
		require.Equal(t, 3, tree.Groups["guides"].Position)
		require.Equal(t, "Guides", tree.Groups["guides"].Label)
	}
}

func TestBuildTree_PositionedIndexOverridesCategoryPosition(t *testing.T) {
	leaf := doc("guides/setup", "Setup", nil)
	leaf.Category = content.CategoryAnnotations{Position: 3, Collapsible: true}
	index := doc("guides/index", "Guides", intPtr(2))

	for _, docs := range [][]*content.Document{
		{leaf, index},
		{index, leaf},
	} {
		tree := BuildTree(docs)
		require.Equal(t, 2, tree.Groups["guides"].Position)
	}
}

func TestBuildTree_SidebarGroupOverridePlacesDocument(t *testing.T) {
	d := doc("misc/note", "Note", nil)
	d.Meta.SidebarGroup = "advanced"

	tree := BuildTree([]*content.Document{d})
	require.Contains(t, tree.Groups, "advanced")
	require.Len(t, tree.Groups["advanced"].Documents, 1)
	require.NotContains(t, tree.Groups, "misc")
}

func TestBuildTree_DefaultGroupLabelFromSegment(t *testing.T) {
	tree := BuildTree([]*content.Document{doc("getting-started/install", "Install", nil)})
	require.Equal(t, "Getting started", tree.Groups["getting-started"].Label)
}

func TestFlatten_OrdersByPositionWithUnorderedLast(t *testing.T) {
	docs := []*content.Document{
		doc("g/b", "B", intPtr(2)),
		doc("g/u", "U", nil),
		doc("g/a", "A", intPtr(1)),
	}

	ordered := Flatten(BuildTree(docs))
	titles := make([]string, 0, len(ordered))
	for _, d := range ordered {
		titles = append(titles, d.Title)
	}
	require.Equal(t, []string{"A", "B", "U"}, titles)
}

func TestFlatten_StandaloneBeforeGroupsAndDepthFirst(t *testing.T) {
	docs := []*content.Document{
		doc("z-standalone", "Standalone", nil),
		doc("guides/setup", "Setup", intPtr(1)),
		doc("guides/deep/detail", "Detail", nil),
		doc("api/auth", "Auth", nil),
	}
	// Order groups explicitly: guides before api.
	docsWithIndex := append(docs,
		func() *content.Document {
			d := doc("guides/index", "Guides", intPtr(1))
			return d
		}(),
		func() *content.Document {
			d := doc("api/index", "API", intPtr(2))
			return d
		}(),
	)

	ordered := Flatten(BuildTree(docsWithIndex))
	slugs := make([]string, 0, len(ordered))
	for _, d := range ordered {
		slugs = append(slugs, d.Slug)
	}
	require.Equal(t, []string{"z-standalone", "guides/setup", "guides/deep/detail", "api/auth"}, slugs)
}

func TestAdjacent_PrevNextWithinSameTabClass(t *testing.T) {
	ordered := []*content.Document{
		tabbedDoc("a", "A", "x"),
		tabbedDoc("b", "B", ""),
		tabbedDoc("c", "C", "x"),
		tabbedDoc("d", "D", "x"),
	}

	prev, next := Adjacent("c", ordered)
	require.NotNil(t, prev)
	require.Equal(t, "a", prev.Slug)
	require.NotNil(t, next)
	require.Equal(t, "d", next.Slug)

	// The untagged document only neighbors other untagged documents.
	prev, next = Adjacent("b", ordered)
	require.Nil(t, prev)
	require.Nil(t, next)
}

func TestAdjacent_Boundaries(t *testing.T) {
	ordered := []*content.Document{
		tabbedDoc("a", "A", ""),
		tabbedDoc("b", "B", ""),
	}

	prev, next := Adjacent("a", ordered)
	require.Nil(t, prev)
	require.Equal(t, "b", next.Slug)

	prev, next = Adjacent("b", ordered)
	require.Equal(t, "a", prev.Slug)
	require.Nil(t, next)
}

func TestAdjacent_UnknownSlug_ReturnsNilPair(t *testing.T) {
	prev, next := Adjacent("missing", []*content.Document{doc("a", "A", nil)})
	require.Nil(t, prev)
	require.Nil(t, next)
}

func TestIsCategoryPage_StrictPrefixOnly(t *testing.T) {
	docs := []*content.Document{
		doc("guides", "Guides", nil),
		doc("guides/setup", "Setup", nil),
		doc("guidelines", "Guidelines", nil),
	}

	require.True(t, IsCategoryPage("guides", docs))
	require.False(t, IsCategoryPage("guidelines", docs))
	require.False(t, IsCategoryPage("guides/setup", docs))
}

func TestTabGroups_DistinctInCorpusOrder(t *testing.T) {
	docs := []*content.Document{
		tabbedDoc("a", "A", "guides"),
		tabbedDoc("b", "B", ""),
		tabbedDoc("c", "C", "reference"),
		tabbedDoc("d", "D", "guides"),
	}

	require.Equal(t, []string{"guides", "reference"}, TabGroups(docs))
}

func TestFilterByTabGroup_UntaggedInFirstTab(t *testing.T) {
	docs := []*content.Document{
		tabbedDoc("a", "A", "guides"),
		tabbedDoc("b", "B", ""),
		tabbedDoc("c", "C", "reference"),
	}

	guides := FilterByTabGroup(docs, "guides", true)
	require.Len(t, guides, 2)

	reference := FilterByTabGroup(docs, "reference", true)
	require.Len(t, reference, 1)
	require.Equal(t, "c", reference[0].Slug)
}

func TestFilterByTabGroup_UntaggedEverywhereWhenDisabled(t *testing.T) {
	docs := []*content.Document{
		tabbedDoc("a", "A", "guides"),
		tabbedDoc("b", "B", ""),
		tabbedDoc("c", "C", "reference"),
	}

	reference := FilterByTabGroup(docs, "reference", false)
	require.Len(t, reference, 2)
}

func TestOrderedDocuments_StableOnTies(t *testing.T) {
	g := &Group{Documents: []*content.Document{
		doc("first", "First", intPtr(5)),
		doc("second", "Second", intPtr(5)),
		doc("third", "Third", intPtr(1)),
	}}

	ordered := g.OrderedDocuments()
	require.Equal(t, "third", ordered[0].Slug)
	require.Equal(t, "first", ordered[1].Slug)
	require.Equal(t, "second", ordered[2].Slug)
}

func TestBuildTree_CategoryAnnotationsApplyToExactGroup(t *testing.T) {
	d := doc("api/auth", "Auth", nil)
	d.Category = content.CategoryAnnotations{
		Label:       "API Reference",
		Position:    3,
		Collapsible: true,
		Collapsed:   true,
		Icon:        "gear",
	}

	tree := BuildTree([]*content.Document{d})
	g := tree.Groups["api"]
	require.Equal(t, "API Reference", g.Label)
	require.Equal(t, 3, g.Position)
	require.True(t, g.Collapsed)
	require.Equal(t, "gear", g.Icon)
}
