// Package content resolves versioned, localized documentation files into
// Documents and scans whole version corpora with locale deduplication.
package content

import (
	"math"
	"strings"
)

// UnorderedPosition is the sentinel assigned to documents and groups without
// an explicit ordering hint. It sorts after all explicitly ordered siblings.
const UnorderedPosition = 999

// Document is the resolved representation of one content file.
//
// Slug is the canonical routing identifier, locale-prefixed when applicable.
// FilePath is the logical path (locale suffix stripped, before any custom
// slug override) used for grouping and deduplication. The two differ when
// frontmatter declares an explicit slug override.
type Document struct {
	Slug        string
	FilePath    string
	Title       string
	Description string
	Body        string
	Locale      string
	Meta        Meta
	Category    CategoryAnnotations
}

// Meta holds typed frontmatter fields plus a string-keyed extension map for
// everything not modeled explicitly.
type Meta struct {
	Title           string
	Description     string
	Slug            string // custom slug override, final segment only
	SidebarPosition *int
	Order           *int
	SidebarGroup    string // explicit sidebar group override
	Draft           bool
	Tags            []string
	Icon            string
	TabGroup        string
	Locale          string
	ReadingTime     int // minutes, derived
	WordCount       int // derived
	Extra           map[string]any
}

// Position returns the explicit ordering hint, or UnorderedPosition when the
// document declares none.
func (m Meta) Position() int {
	if m.SidebarPosition != nil {
		return *m.SidebarPosition
	}
	if m.Order != nil {
		return *m.Order
	}
	return UnorderedPosition
}

// CategoryAnnotations are inherited from the nearest ancestor folder's
// category descriptor, never from the document itself.
type CategoryAnnotations struct {
	Label       string
	Position    int
	Collapsible bool
	Collapsed   bool
	Icon        string
	TabGroup    string
}

// TabGroup returns the document's effective tab group: its own metadata
// first, then the inherited category annotation. Empty means the document
// belongs to the "no tab group" membership class.
func (d *Document) TabGroup() string {
	if d.Meta.TabGroup != "" {
		return d.Meta.TabGroup
	}
	return d.Category.TabGroup
}

// Folder returns the parent folder of the document's logical path, or ""
// for root-level documents.
func (d *Document) Folder() string {
	idx := strings.LastIndex(d.FilePath, "/")
	if idx < 0 {
		return ""
	}
	return d.FilePath[:idx]
}

// IsIndex reports whether the document is the index page of its folder.
func (d *Document) IsIndex() bool {
	return d.FilePath == "index" || strings.HasSuffix(d.FilePath, "/index")
}

// metaFromFields maps decoded frontmatter into a Meta, collecting unmodeled
// keys into Extra.
func metaFromFields(fields map[string]any) Meta {
	m := Meta{Extra: map[string]any{}}
	for key, value := range fields {
		switch key {
		case "title":
			m.Title = asString(value)
		case "description":
			m.Description = asString(value)
		case "slug":
			m.Slug = asString(value)
		case "sidebar_position":
			m.SidebarPosition = asIntPtr(value)
		case "order":
			m.Order = asIntPtr(value)
		case "sidebar_group", "group":
			m.SidebarGroup = asString(value)
		case "draft":
			m.Draft = asBool(value)
		case "tags":
			m.Tags = asStringSlice(value)
		case "icon":
			m.Icon = asString(value)
		case "tab_group":
			m.TabGroup = asString(value)
		case "locale":
			m.Locale = asString(value)
		default:
			m.Extra[key] = value
		}
	}
	return m
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// asIntPtr accepts the numeric shapes yaml.v3 produces for ordering hints.
func asIntPtr(v any) *int {
	switch n := v.(type) {
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case float64:
		if n == math.Trunc(n) {
			i := int(n)
			return &i
		}
	}
	return nil
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
