// Package render builds the category-grouped Markdown index of wiki pages.
package render

import (
	"strings"

	"github.com/starford/wikisync/internal/models"
	"github.com/starford/wikisync/internal/parser"
)

// DefaultLinkBase is the wiki location relative to the repository README.
const DefaultLinkBase = "../../wiki"

// Options controls how the index listing is rendered.
type Options struct {
	LinkBase        string
	DefaultCategory string
	// Previews embeds each snippet's formatted preview below its link.
	Previews     bool
	PreviewLevel int
}

// Link renders a Markdown link to a wiki page. The .md extension is dropped
// because the wiki serves pages by bare name.
func Link(base, page, text string) string {
	page = strings.TrimSuffix(page, ".md")
	return "[" + text + "](" + strings.TrimSuffix(base, "/") + "/" + page + ")"
}

// Index renders the bullet listing: one top-level bullet per category that
// has at least one snippet, then one indented link bullet per snippet.
//
// Categories are de-duplicated and emitted in first-seen order. Snippets
// whose category is not in categories are listed under the default
// category. The listing ends with a trailing newline.
func Index(categories []string, snippets []models.Snippet, opts Options) string {
	declared := make(map[string]struct{}, len(categories))
	order := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, dup := declared[c]; dup {
			continue
		}
		declared[c] = struct{}{}
		order = append(order, c)
	}

	grouped := make(map[string][]models.Snippet, len(order))
	for _, s := range snippets {
		c := s.Category
		if _, ok := declared[c]; !ok {
			c = opts.DefaultCategory
		}
		grouped[c] = append(grouped[c], s)
	}

	var out []string
	for _, c := range order {
		group := grouped[c]
		if len(group) == 0 {
			continue
		}
		out = append(out, "* "+c)
		for _, s := range group {
			out = append(out, "  * "+Link(opts.LinkBase, s.File, s.Title))
			if opts.Previews && s.HasPreview {
				out = append(out, previewLines(s.Preview, opts.PreviewLevel)...)
			}
		}
	}
	out = append(out, "")

	return strings.Join(out, "\n")
}

// previewLines formats a preview and indents it as a continuation of the
// snippet bullet.
func previewLines(preview string, level int) []string {
	formatted := parser.FormatPreview(preview, level)
	if formatted == "" {
		return nil
	}
	var out []string
	out = append(out, "")
	for _, line := range strings.Split(formatted, "\n") {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, "    "+line)
	}
	out = append(out, "")
	return out
}

// Document joins the fixed preamble and the rendered listing.
func Document(preamble, listing string) string {
	return preamble + "\n" + listing
}
