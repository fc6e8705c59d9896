// Package storage defines the wiki file-system abstraction.
package storage

// Provider is the interface for read access to a flat wiki directory.
type Provider interface {
	// List returns the names of the .md files directly under the wiki root.
	List() ([]string, error)
	// Read returns the raw bytes of the page called name.
	Read(name string) ([]byte, error)
	// Exists reports whether a regular file called name is present.
	Exists(name string) bool
}
