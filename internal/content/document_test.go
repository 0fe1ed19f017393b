package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestMeta_Position_SidebarPositionWinsOverOrder(t *testing.T) {
	m := Meta{SidebarPosition: intPtr(3), Order: intPtr(7)}
	require.Equal(t, 3, m.Position())

	m = Meta{Order: intPtr(7)}
	require.Equal(t, 7, m.Position())

	require.Equal(t, UnorderedPosition, Meta{}.Position())
}

func TestDocument_TabGroup_OwnMetaBeforeCategory(t *testing.T) {
	doc := &Document{
		Meta:     Meta{TabGroup: "guides"},
		Category: CategoryAnnotations{TabGroup: "reference"},
	}
	require.Equal(t, "guides", doc.TabGroup())

	doc.Meta.TabGroup = ""
	require.Equal(t, "reference", doc.TabGroup())

	doc.Category.TabGroup = ""
	require.Equal(t, "", doc.TabGroup())
}

func TestDocument_Folder(t *testing.T) {
	require.Equal(t, "", (&Document{FilePath: "intro"}).Folder())
	require.Equal(t, "guides", (&Document{FilePath: "guides/intro"}).Folder())
	require.Equal(t, "guides/deep", (&Document{FilePath: "guides/deep/intro"}).Folder())
}

func TestDocument_IsIndex(t *testing.T) {
	require.True(t, (&Document{FilePath: "index"}).IsIndex())
	require.True(t, (&Document{FilePath: "guides/index"}).IsIndex())
	require.False(t, (&Document{FilePath: "guides/intro"}).IsIndex())
	require.False(t, (&Document{FilePath: "reindex"}).IsIndex())
}

func TestMetaFromFields_TypedAndExtraKeys(t *testing.T) {
	m := metaFromFields(map[string]any{
		"title":            "Title",
		"description":      "Desc",
		"slug":             "custom",
		"sidebar_position": 4,
		"draft":            true,
		"tags":             []any{"a", "b"},
		"icon":             "book",
		"tab_group":        "guides",
		"custom_field":     "kept",
	})

	require.Equal(t, "Title", m.Title)
	require.Equal(t, "Desc", m.Description)
	require.Equal(t, "custom", m.Slug)
	require.Equal(t, 4, m.Position())
	require.True(t, m.Draft)
	require.Equal(t, []string{"a", "b"}, m.Tags)
	require.Equal(t, "book", m.Icon)
	require.Equal(t, "guides", m.TabGroup)
	require.Equal(t, "kept", m.Extra["custom_field"])
}

func TestMetaFromFields_NumericShapes(t *testing.T) {
	require.Equal(t, 5, metaFromFields(map[string]any{"order": int64(5)}).Position())
	require.Equal(t, 5, metaFromFields(map[string]any{"order": float64(5)}).Position())
	require.Equal(t, UnorderedPosition, metaFromFields(map[string]any{"order": 5.5}).Position())
	require.Equal(t, UnorderedPosition, metaFromFields(map[string]any{"order": "five"}).Position())
}

func TestMetaFromFields_GroupAlias(t *testing.T) {
	require.Equal(t, "advanced", metaFromFields(map[string]any{"group": "advanced"}).SidebarGroup)
	require.Equal(t, "advanced", metaFromFields(map[string]any{"sidebar_group": "advanced"}).SidebarGroup)
}
