package content

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// SecurityPolicy configures the content security validator.
type SecurityPolicy struct {
	// Strict is consumed by the Resolver: findings make the document
	// unresolvable instead of being served sanitized.
	Strict bool
	// BlockDangerous strips flagged HTML from the sanitized body. When
	// false the body passes through unchanged and findings are advisory.
	BlockDangerous bool
}

// SecurityFinding describes one disallowed construct in a document body.
type SecurityFinding struct {
	Kind   string // "html_tag", "html_attr", "url_scheme"
	Detail string
}

// SecurityResult is the outcome of validating one document body.
type SecurityResult struct {
	Valid     bool
	Findings  []SecurityFinding
	Sanitized string
}

// SecurityValidator screens Markdown bodies for embedded HTML and link
// destinations that must not reach a rendering layer.
type SecurityValidator struct {
	policy SecurityPolicy
}

// NewSecurityValidator creates a validator with the given policy.
func NewSecurityValidator(policy SecurityPolicy) *SecurityValidator {
	return &SecurityValidator{policy: policy}
}

// Policy returns the validator's policy.
func (v *SecurityValidator) Policy() SecurityPolicy {
	return v.policy
}

var dangerousTags = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

type byteRange struct {
	start int
	stop  int
}

// Validate parses the Markdown body, inspects every raw-HTML construct and
// link destination, and returns findings plus a best-effort sanitized body.
func (v *SecurityValidator) Validate(body string) SecurityResult {
	source := []byte(body)
	root := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	var findings []SecurityFinding
	var flagged []byteRange

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.HTMLBlock:
			ranges := blockRanges(node)
			if found := scanHTMLFragment(rangesText(source, ranges)); len(found) > 0 {
				findings = append(findings, found...)
				flagged = append(flagged, ranges...)
			}
		case *gmast.RawHTML:
			ranges := rawRanges(node)
			if found := scanHTMLFragment(rangesText(source, ranges)); len(found) > 0 {
				findings = append(findings, found...)
				flagged = append(flagged, ranges...)
			}
		case *gmast.Link:
			if f, bad := checkURLScheme(string(node.Destination)); bad {
				findings = append(findings, f)
			}
		case *gmast.Image:
			if f, bad := checkURLScheme(string(node.Destination)); bad {
				findings = append(findings, f)
			}
		case *gmast.AutoLink:
			if f, bad := checkURLScheme(string(node.URL(source))); bad {
				findings = append(findings, f)
			}
		}
		return gmast.WalkContinue, nil
	})

	sanitized := body
	if v.policy.BlockDangerous && len(flagged) > 0 {
		sanitized = cutRanges(source, flagged)
	}

	return SecurityResult{
		Valid:     len(findings) == 0,
		Findings:  findings,
		Sanitized: sanitized,
	}
}

func blockRanges(n *gmast.HTMLBlock) []byteRange {
	var ranges []byteRange
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		ranges = append(ranges, byteRange{start: seg.Start, stop: seg.Stop})
	}
	if n.HasClosure() {
		seg := n.ClosureLine
		ranges = append(ranges, byteRange{start: seg.Start, stop: seg.Stop})
	}
	return ranges
}

func rawRanges(n *gmast.RawHTML) []byteRange {
	var ranges []byteRange
	for i := range n.Segments.Len() {
		seg := n.Segments.At(i)
		ranges = append(ranges, byteRange{start: seg.Start, stop: seg.Stop})
	}
	return ranges
}

func rangesText(source []byte, ranges []byteRange) string {
	var b strings.Builder
	for _, r := range ranges {
		if r.start < 0 || r.stop > len(source) || r.start >= r.stop {
			continue
		}
		b.Write(source[r.start:r.stop])
	}
	return b.String()
}

// scanHTMLFragment tokenizes an HTML fragment and reports dangerous tags,
// inline event handlers, and executable URL schemes in attributes.
func scanHTMLFragment(fragment string) []SecurityFinding {
	var findings []SecurityFinding

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return findings
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		tag := strings.ToLower(string(name))
		if dangerousTags[tag] {
			findings = append(findings, SecurityFinding{Kind: "html_tag", Detail: tag})
		}

		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			attr := strings.ToLower(string(key))
			if strings.HasPrefix(attr, "on") {
				findings = append(findings, SecurityFinding{
					Kind:   "html_attr",
					Detail: tag + "." + attr,
				})
				continue
			}
			if attr == "href" || attr == "src" {
				if f, bad := checkURLScheme(string(val)); bad {
					findings = append(findings, f)
				}
			}
		}
	}
}

func checkURLScheme(dest string) (SecurityFinding, bool) {
	lowered := strings.ToLower(strings.TrimSpace(dest))
	for _, scheme := range []string{"javascript:", "vbscript:", "data:text/html"} {
		if strings.HasPrefix(lowered, scheme) {
			return SecurityFinding{Kind: "url_scheme", Detail: dest}, true
		}
	}
	return SecurityFinding{}, false
}

// cutRanges removes the flagged byte ranges from source. Overlapping ranges
// are merged first so each byte is cut at most once.
func cutRanges(source []byte, ranges []byteRange) string {
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	var b strings.Builder
	cursor := 0
	for _, r := range ranges {
		if r.start < cursor {
			if r.stop > cursor {
				cursor = r.stop
			}
			continue
		}
		if r.start > len(source) {
			break
		}
		b.Write(source[cursor:r.start])
		cursor = min(r.stop, len(source))
	}
	if cursor < len(source) {
		b.Write(source[cursor:])
	}
	return b.String()
}
