// Package testutil provides shared test helpers for setting up wiki directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/wikisync/internal/storage"
)

// TestWiki creates a temporary wiki directory populated with files and
// returns its path together with a storage provider rooted there.
func TestWiki(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, files)
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFiles writes each name → content pair below dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
