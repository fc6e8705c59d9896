// Package parser extracts previews, category markers, and front matter from
// wiki page Markdown.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Fence delimits fenced code blocks. The preview ends at the first one.
const Fence = "```"

var (
	headingRe        = regexp.MustCompile(`^\s*(#+) (.*)$`)
	blankRe          = regexp.MustCompile(`^\s*$`)
	categoryLineRe   = regexp.MustCompile(`^\* (\w+)$`)
	categoryMarkerRe = regexp.MustCompile(`^Category: (\w+)$`)
	categoryNameRe   = regexp.MustCompile(`^\w+$`)
)

// Result holds the output of parsing a wiki page.
type Result struct {
	Preview    string
	HasPreview bool
	Category   string // empty when no trailing marker was found
}

// Parse strips a leading front matter block, then extracts the preview (text
// before the first fence) and the trailing category marker from the body.
// Front matter keys never feed the title or category.
func Parse(data []byte) *Result {
	body := stripFrontmatter(data)

	parts := strings.Split(body, Fence)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	res := &Result{}
	if len(parts) > 1 {
		res.Preview = parts[0]
		res.HasPreview = true
	}

	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "\n"); i >= 0 {
		last = last[i+1:]
	}
	if c, ok := ParseCategoryMarker(last); ok {
		res.Category = c
	}
	return res
}

// stripFrontmatter drops a leading YAML front matter block. Pages without
// one, or whose block fails to decode, are returned whole.
func stripFrontmatter(data []byte) string {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\n\r"), []byte("---")) {
		return string(data)
	}
	var discard map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &discard)
	if err != nil {
		return string(data)
	}
	return string(body)
}

// ParseCategoryLine matches a Categories.md bullet of the form "* Name".
// The trailing newline, if any, must already be stripped.
func ParseCategoryLine(line string) (string, bool) {
	m := categoryLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseCategoryMarker matches a trailing "Category: Name" line.
func ParseCategoryMarker(line string) (string, bool) {
	m := categoryMarkerRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidCategory reports whether name is a usable category name.
func ValidCategory(name string) bool {
	return categoryNameRe.MatchString(name)
}

// FormatPreview makes a preview embeddable below a heading of depth level.
//
// The first heading, when it precedes any content, is the page's own title:
// it is dropped and its depth becomes the reference depth. A later heading at
// the reference depth ends the preview. Other headings are shifted to
// level+depth. Blank lines are dropped until content starts.
func FormatPreview(preview string, level int) string {
	var (
		out          []string
		headlineSeen bool
		refDepth     int
		contentSeen  bool
	)

	for _, line := range strings.Split(preview, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			depth := len(m[1])
			if !contentSeen {
				headlineSeen = true
				refDepth = depth
				continue
			}
			if headlineSeen && depth == refDepth {
				break
			}
			out = append(out, strings.Repeat("#", level+depth)+" "+m[2])
			continue
		}
		if blankRe.MatchString(line) {
			if !contentSeen {
				continue
			}
			out = append(out, line)
			continue
		}
		contentSeen = true
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
