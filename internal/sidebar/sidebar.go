// Package sidebar converts a flat, resolved document corpus into a
// hierarchical, position-ordered navigation tree and derives linear prev/next
// ordering from it.
package sidebar

import (
	"path"
	"sort"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/docsite/internal/content"
)

// Group is one navigation tree node. Groups live in the Tree's flat arena
// keyed by folder path; Children holds arena keys, not nested structs, so
// the merge/sort step stays a pure function over the arena.
type Group struct {
	Label       string
	Path        string
	Icon        string
	Position    int
	Collapsible bool
	Collapsed   bool
	Documents   []*content.Document
	Children    []string
}

// Tree is the assembled sidebar: a group arena plus the standalone documents
// rendered before any group.
type Tree struct {
	Groups     map[string]*Group
	RootPaths  []string
	Standalone []*content.Document
}

// BuildTree places every document into the navigation tree. Placement is the
// document's logical folder, or an explicit sidebar group override from its
// metadata. Folder groups are materialized lazily, nested to arbitrary
// depth. Index documents contribute label/position/icon to their enclosing
// group instead of becoming leaves.
func BuildTree(docs []*content.Document) *Tree {
	t := &Tree{Groups: map[string]*Group{}}

	for _, doc := range docs {
		placement := doc.Meta.SidebarGroup
		if placement == "" {
			placement = doc.Folder()
		}

		if placement == "" {
			t.Standalone = append(t.Standalone, doc)
			continue
		}

		group := t.ensureGroup(placement)

		if doc.Meta.SidebarGroup == "" && doc.IsIndex() {
			// The folder's index page configures the group itself. An index
			// without an explicit position must not mask one a sibling's
			// category annotations already contributed.
			group.Label = doc.Title
			if doc.Meta.SidebarPosition != nil || doc.Meta.Order != nil {
				group.Position = doc.Meta.Position()
			}
			if doc.Meta.Icon != "" {
				group.Icon = doc.Meta.Icon
			}
			continue
		}

		applyCategoryToGroup(group, doc)
		group.Documents = append(group.Documents, doc)
	}

	return t
}

// ensureGroup returns the arena group for a folder path, materializing it
// and all missing ancestors.
func (t *Tree) ensureGroup(folder string) *Group {
	if g, ok := t.Groups[folder]; ok {
		return g
	}

	g := &Group{
		Label:       labelFromSegment(path.Base(folder)),
		Path:        folder,
		Position:    content.UnorderedPosition,
		Collapsible: true,
	}
	t.Groups[folder] = g

	parent := path.Dir(folder)
	if parent == "." || parent == folder {
		t.RootPaths = append(t.RootPaths, folder)
	} else {
		p := t.ensureGroup(parent)
		p.Children = append(p.Children, folder)
	}
	return g
}

// applyCategoryToGroup overlays a document's inherited category annotations
// onto its exact enclosing group. Annotations inherited from a higher
// ancestor do not leak onto intermediate groups.
func applyCategoryToGroup(g *Group, doc *content.Document) {
	if doc.Folder() != g.Path {
		return
	}
	c := doc.Category
	if c == (content.CategoryAnnotations{}) {
		return
	}
	if c.Label != "" {
		g.Label = c.Label
	}
	if g.Position == content.UnorderedPosition {
		g.Position = c.Position
	}
	if c.Icon != "" && g.Icon == "" {
		g.Icon = c.Icon
	}
	g.Collapsible = c.Collapsible
	g.Collapsed = c.Collapsed
}

// entry is one slot in a level's merged ordering: either a group or a leaf.
type entry struct {
	position int
	order    int // discovery order for stable ties
	group    *Group
	doc      *content.Document
}

// Flatten performs a depth-first traversal of the ordered tree, standalone
// documents first, producing the single global order used for prev/next
// computation.
func Flatten(t *Tree) []*content.Document {
	var out []*content.Document
	out = append(out, t.Standalone...)
	for _, g := range orderedLevel(t, t.RootPaths) {
		out = appendGroup(t, g, out)
	}
	return out
}

func appendGroup(t *Tree, g *Group, out []*content.Document) []*content.Document {
	merged := mergedEntries(t, g.Children, g.Documents)
	for _, e := range merged {
		if e.group != nil {
			out = appendGroup(t, e.group, out)
		} else {
			out = append(out, e.doc)
		}
	}
	return out
}

// orderedLevel sorts a set of sibling groups (no leaf documents) by
// position, stable.
func orderedLevel(t *Tree, paths []string) []*Group {
	groups := make([]*Group, 0, len(paths))
	for _, p := range paths {
		groups = append(groups, t.Groups[p])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Position < groups[j].Position
	})
	return groups
}

// mergedEntries merges sub-groups and leaf documents of one level into a
// single position-ordered list. Ties keep discovery order.
func mergedEntries(t *Tree, childPaths []string, docs []*content.Document) []entry {
	entries := make([]entry, 0, len(childPaths)+len(docs))
	for i, p := range childPaths {
		g := t.Groups[p]
		entries = append(entries, entry{position: g.Position, order: i, group: g})
	}
	for i, d := range docs {
		entries = append(entries, entry{position: d.Meta.Position(), order: len(childPaths) + i, doc: d})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].position != entries[j].position {
			return entries[i].position < entries[j].position
		}
		return entries[i].order < entries[j].order
	})
	return entries
}

// Adjacent returns the documents immediately before and after slug within
// the flattened order, restricted to documents sharing the current
// document's tab-group membership class. "No tab group" is its own class.
// Neighbors are nil at the boundaries or when slug is not present.
func Adjacent(slug string, ordered []*content.Document) (prev, next *content.Document) {
	current := -1
	for i, doc := range ordered {
		if doc.Slug == slug {
			current = i
			break
		}
	}
	if current < 0 {
		return nil, nil
	}

	tab := ordered[current].TabGroup()
	for i := current - 1; i >= 0; i-- {
		if ordered[i].TabGroup() == tab {
			prev = ordered[i]
			break
		}
	}
	for i := current + 1; i < len(ordered); i++ {
		if ordered[i].TabGroup() == tab {
			next = ordered[i]
			break
		}
	}
	return prev, next
}

// IsCategoryPage reports whether at least one other document's slug has slug
// as a strict parent path segment.
func IsCategoryPage(slug string, docs []*content.Document) bool {
	prefix := slug + "/"
	for _, doc := range docs {
		if doc.Slug != slug && strings.HasPrefix(doc.Slug, prefix) {
			return true
		}
	}
	return false
}

// TabGroups lists the distinct non-empty tab groups in corpus order.
func TabGroups(docs []*content.Document) []string {
	seen := map[string]bool{}
	var tabs []string
	for _, doc := range docs {
		tab := doc.TabGroup()
		if tab != "" && !seen[tab] {
			seen[tab] = true
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

// FilterByTabGroup restricts a corpus to one active tab. Untagged documents
// surface in the first configured tab when untaggedInFirst is set (the
// historical policy), otherwise in every tab.
func FilterByTabGroup(docs []*content.Document, active string, untaggedInFirst bool) []*content.Document {
	tabs := TabGroups(docs)
	out := make([]*content.Document, 0, len(docs))
	for _, doc := range docs {
		tab := doc.TabGroup()
		switch {
		case tab == active:
			out = append(out, doc)
		case tab == "":
			if !untaggedInFirst || len(tabs) == 0 || tabs[0] == active {
				out = append(out, doc)
			}
		}
	}
	return out
}

// OrderedRoots returns the tree's root groups sorted by position.
func OrderedRoots(t *Tree) []*Group {
	return orderedLevel(t, t.RootPaths)
}

// OrderedChildren returns a group's sub-groups sorted by position.
func OrderedChildren(t *Tree, g *Group) []*Group {
	return orderedLevel(t, g.Children)
}

// OrderedDocuments returns a group's leaf documents sorted by position,
// stable on discovery order.
func (g *Group) OrderedDocuments() []*content.Document {
	docs := make([]*content.Document, len(g.Documents))
	copy(docs, g.Documents)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Meta.Position() < docs[j].Meta.Position()
	})
	return docs
}

func labelFromSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")
	runes := []rune(segment)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
