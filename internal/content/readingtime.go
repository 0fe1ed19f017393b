package content

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// wordsPerMinute is the reading speed assumed for reading-time estimates.
const wordsPerMinute = 200

// countWords extracts the plain text of a Markdown body from its AST and
// counts whitespace-delimited words. Markup syntax does not count; code
// block contents do.
func countWords(body string) int {
	source := []byte(body)
	root := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	words := 0
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Text:
			words += len(strings.Fields(string(node.Segment.Value(source))))
		case *gmast.String:
			words += len(strings.Fields(string(node.Value)))
		case *gmast.CodeBlock:
			words += segmentWords(source, node.Lines())
		case *gmast.FencedCodeBlock:
			words += segmentWords(source, node.Lines())
		case *gmast.CodeSpan:
			// Children are Text nodes, already counted.
		}
		return gmast.WalkContinue, nil
	})
	return words
}

func segmentWords(source []byte, lines *gmtext.Segments) int {
	words := 0
	for i := range lines.Len() {
		seg := lines.At(i)
		words += len(strings.Fields(string(seg.Value(source))))
	}
	return words
}

// readingMinutes converts a word count to whole minutes, rounded up.
func readingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
