// Package models defines the domain types for wikisync.
package models

// DefaultCategory is assigned to snippets without a category marker.
const DefaultCategory = "Uncategorized"

// Snippet represents one wiki page documenting a single trick.
type Snippet struct {
	File       string `json:"file"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Preview    string `json:"preview,omitempty"`
	HasPreview bool   `json:"has_preview"`
}
