package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/pathsafe"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.svc.Versions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &VersionsResponse{
		Versions:  versions,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	slug := r.PathValue("slug")
	locale := r.URL.Query().Get("locale")

	doc, err := s.svc.Resolve(r.Context(), slug, version, locale)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := documentResponse(doc)
	// Neighbors come from the corpus of the locale the document actually
	// resolved to, which a locale-prefixed slug may have chosen without a
	// query parameter.
	prev, next, err := s.svc.Adjacent(r.Context(), doc.Slug, version, doc.Locale)
	if err == nil {
		resp.Prev = documentLink(prev)
		resp.Next = documentLink(next)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	version := r.PathValue("version")
	locale := r.URL.Query().Get("locale")
	tab := r.URL.Query().Get("tab")

	docs, err := s.svc.Scan(r.Context(), version, locale)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tabs := sidebar.TabGroups(docs)
	if tab != "" {
		docs = sidebar.FilterByTabGroup(docs, tab, s.cfg.Sidebar.UntaggedInFirstTabEnabled())
	}
	tree := sidebar.BuildTree(docs)

	resp := &SidebarResponse{
		Version:   version,
		Locale:    locale,
		TabGroups: tabs,
		Groups:    renderGroups(tree, sidebar.OrderedRoots(tree)),
	}
	for _, doc := range tree.Standalone {
		if link := documentLink(doc); link != nil {
			resp.Standalone = append(resp.Standalone, *link)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &HealthResponse{
		Status:       "ok",
		CacheEntries: s.svc.Store().Len(),
		StartTime:    s.startTime.UTC(),
		Uptime:       time.Since(s.startTime).Seconds(),
	})
}

// renderGroups converts arena groups into the nested JSON shape, ordered by
// position at every level.
func renderGroups(t *sidebar.Tree, groups []*sidebar.Group) []SidebarGroup {
	out := make([]SidebarGroup, 0, len(groups))
	for _, g := range groups {
		rendered := SidebarGroup{
			Label:       g.Label,
			Path:        g.Path,
			Icon:        g.Icon,
			Position:    g.Position,
			Collapsible: g.Collapsible,
			Collapsed:   g.Collapsed,
			Children:    renderGroups(t, sidebar.OrderedChildren(t, g)),
		}
		for _, doc := range g.OrderedDocuments() {
			if link := documentLink(doc); link != nil {
				rendered.Documents = append(rendered.Documents, *link)
			}
		}
		out = append(out, rendered)
	}
	return out
}

func documentResponse(doc *content.Document) *DocumentResponse {
	return &DocumentResponse{
		Slug:        doc.Slug,
		Title:       doc.Title,
		Description: doc.Description,
		Body:        doc.Body,
		Locale:      doc.Locale,
		TabGroup:    doc.TabGroup(),
		Position:    doc.Meta.Position(),
		Tags:        doc.Meta.Tags,
		Icon:        doc.Meta.Icon,
		ReadingTime: doc.Meta.ReadingTime,
		WordCount:   doc.Meta.WordCount,
		Extra:       doc.Meta.Extra,
	}
}

func documentLink(doc *content.Document) *DocumentLink {
	if doc == nil {
		return nil
	}
	return &DocumentLink{Slug: doc.Slug, Title: doc.Title}
}

// writeDomainError maps resolver errors onto HTTP status codes. Traversal
// attempts are client errors; unknown documents are 404s; everything else is
// an internal failure.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pathsafe.ErrPathTraversal):
		writeError(w, http.StatusBadRequest, "invalid path")
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeJSON encodes into an intermediate buffer so serialization failures
// never produce partial responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		slog.Error("failed encoding JSON response", logfields.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&ErrorResponse{
		Error:     msg,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}
