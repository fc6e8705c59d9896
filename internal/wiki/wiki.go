// Package wiki loads the category manifest and snippet pages of a wiki export.
package wiki

import (
	"fmt"
	"strings"

	"github.com/starford/wikisync/internal/apperr"
	"github.com/starford/wikisync/internal/models"
	"github.com/starford/wikisync/internal/parser"
	"github.com/starford/wikisync/internal/storage"
)

// Options carries the values that shape discovery. Nothing in this package
// reads global state.
type Options struct {
	CategoriesFile  string
	DefaultCategory string
	SkipFiles       []string
}

// DefaultOptions returns the stock layout of a GitHub wiki checkout.
func DefaultOptions() Options {
	return Options{
		CategoriesFile:  "Categories.md",
		DefaultCategory: models.DefaultCategory,
		SkipFiles:       []string{"Home.md", "Categories.md", "Contributing.md"},
	}
}

// LoadCategories reads the category manifest and returns the default
// category followed by every declared category in file order. A missing
// manifest is reported as apperr.ErrInvalidWiki.
func LoadCategories(store storage.Provider, opts Options) ([]string, error) {
	if !store.Exists(opts.CategoriesFile) {
		return nil, fmt.Errorf("wiki: %s not found: %w", opts.CategoriesFile, apperr.ErrInvalidWiki)
	}
	data, err := store.Read(opts.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("wiki: read categories: %w", err)
	}

	categories := []string{opts.DefaultCategory}
	for _, line := range strings.Split(string(data), "\n") {
		if name, ok := parser.ParseCategoryLine(strings.TrimSuffix(line, "\r")); ok {
			categories = append(categories, name)
		}
	}
	return categories, nil
}

// Skipped reports whether name must never become a snippet.
func (o Options) Skipped(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	for _, s := range o.SkipFiles {
		if s == name {
			return true
		}
	}
	return false
}

// LoadSnippets turns every qualifying page into a Snippet, in filename
// order. Skipped pages are never opened; any read failure on a snippet page
// aborts the load.
func LoadSnippets(store storage.Provider, opts Options) ([]models.Snippet, error) {
	names, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("wiki: list pages: %w", err)
	}

	var out []models.Snippet
	for _, name := range names {
		if opts.Skipped(name) {
			continue
		}
		data, err := store.Read(name)
		if err != nil {
			return nil, fmt.Errorf("wiki: load %s: %w", name, err)
		}
		res := parser.Parse(data)

		category := res.Category
		if category == "" {
			category = opts.DefaultCategory
		}

		out = append(out, models.Snippet{
			File:       name,
			Title:      Title(name),
			Category:   category,
			Preview:    res.Preview,
			HasPreview: res.HasPreview,
		})
	}
	return out, nil
}

// Title derives a display title from a page filename: "My-Trick.md" becomes
// "My Trick".
func Title(name string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ".md"), "-", " ")
}
