package server

import "time"

// DocumentResponse is the JSON shape of a resolved document.
type DocumentResponse struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Body        string         `json:"body"`
	Locale      string         `json:"locale,omitempty"`
	TabGroup    string         `json:"tab_group,omitempty"`
	Position    int            `json:"position"`
	Tags        []string       `json:"tags,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	ReadingTime int            `json:"reading_time_minutes"`
	WordCount   int            `json:"word_count"`
	Extra       map[string]any `json:"extra,omitempty"`
	Prev        *DocumentLink  `json:"prev,omitempty"`
	Next        *DocumentLink  `json:"next,omitempty"`
}

// DocumentLink is a minimal reference to an adjacent document.
type DocumentLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// VersionsResponse lists the available content versions.
type VersionsResponse struct {
	Versions  []string  `json:"versions"`
	Timestamp time.Time `json:"timestamp"`
}

// SidebarResponse is the navigation tree for one version.
type SidebarResponse struct {
	Version    string          `json:"version"`
	Locale     string          `json:"locale,omitempty"`
	Standalone []DocumentLink `json:"standalone,omitempty"`
	Groups     []SidebarGroup `json:"groups"`
	TabGroups  []string       `json:"tab_groups,omitempty"`
}

// SidebarGroup is one rendered navigation group.
type SidebarGroup struct {
	Label       string         `json:"label"`
	Path        string         `json:"path"`
	Icon        string         `json:"icon,omitempty"`
	Position    int            `json:"position"`
	Collapsible bool           `json:"collapsible"`
	Collapsed   bool           `json:"collapsed"`
	Documents   []DocumentLink `json:"documents,omitempty"`
	Children    []SidebarGroup `json:"children,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse reports process liveness and cache occupancy.
type HealthResponse struct {
	Status       string    `json:"status"`
	CacheEntries int       `json:"cache_entries"`
	StartTime    time.Time `json:"start_time"`
	Uptime       float64   `json:"uptime_seconds"`
}
