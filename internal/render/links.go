package render

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// WikiLinks parses a Markdown document and returns the page names of every
// link whose destination lives under base, in document order. Duplicates
// are kept.
func WikiLinks(doc []byte, base string) []string {
	prefix := strings.TrimSuffix(base, "/") + "/"
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	var pages []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		if page, found := strings.CutPrefix(dest, prefix); found && page != "" {
			pages = append(pages, page)
		}
		return ast.WalkContinue, nil
	})
	return pages
}
