package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyVersion    = "version"
	KeyLocale     = "locale"
	KeySlug       = "slug"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyCacheKey   = "cache_key"
	KeyScanID     = "scan_id"
	KeyDurationMS = "duration_ms"
	KeyDocCount   = "doc_count"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func CacheKey(k string) slog.Attr     { return slog.String(KeyCacheKey, k) }
func ScanID(id string) slog.Attr      { return slog.String(KeyScanID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func DocCount(n int) slog.Attr        { return slog.Int(KeyDocCount, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
