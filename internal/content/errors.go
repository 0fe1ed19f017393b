package content

// Sentinel errors for content resolution. These enable consistent
// classification via errors.Is at the resolver boundary and above.

import "errors"

var (
	// ErrNotFound indicates no file exists for the requested
	// slug/version/locale combination. It is an expected outcome, suitable
	// for rendering a 404-style view, never a crash.
	ErrNotFound = errors.New("document not found")

	// ErrMalformedContent indicates a frontmatter parse failure or an
	// unreadable file. Resolution of the offending file fails; a corpus
	// scan skips it and continues.
	ErrMalformedContent = errors.New("malformed document content")

	// ErrContentSecurity indicates a document body matched a disallowed
	// pattern under a strict policy.
	ErrContentSecurity = errors.New("content security violation")
)
