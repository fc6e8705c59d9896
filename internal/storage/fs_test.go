package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/wikisync/internal/apperr"
)

func tempWiki(t *testing.T, files map[string]string) *FS {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestRead(t *testing.T) {
	s := tempWiki(t, map[string]string{"note.md": "# Hello\nWorld\n"})
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "# Hello\nWorld\n" {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestList_FlatMarkdownOnly(t *testing.T) {
	s := tempWiki(t, map[string]string{
		"b.md":       "b",
		"a.md":       "a",
		"sub/c.md":   "nested",
		"readme.txt": "not md",
	})

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0] != "a.md" || items[1] != "b.md" {
		t.Errorf("names = %q", items)
	}
}

func TestList_DoesNotOpenPages(t *testing.T) {
	s := tempWiki(t, map[string]string{"Trick.md": "x"})
	if err := os.Symlink(filepath.Join(t.TempDir(), "gone.md"), filepath.Join(s.root, "_Sidebar.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0] != "Trick.md" || items[1] != "_Sidebar.md" {
		t.Errorf("names = %q", items)
	}
}

func TestExists(t *testing.T) {
	s := tempWiki(t, map[string]string{"Page.md": "x", "dir/inner.md": "y"})
	if !s.Exists("Page.md") {
		t.Error("Page.md should exist")
	}
	if s.Exists("Missing.md") {
		t.Error("Missing.md should not exist")
	}
	if s.Exists("dir") {
		t.Error("directories are not pages")
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempWiki(t, nil)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
		"sub/page.md",
		"",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "README.md")
	if err := WriteFile(out, []byte("original content")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(out, []byte("updated")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "updated" {
		t.Errorf("expected updated content, got %q", got)
	}

	// Confirm no leftover temp files.
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(out), ".wikisync-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, apperr.ErrInvalidWiki) {
		t.Errorf("err = %v, want ErrInvalidWiki", err)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "wikisync-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if !errors.Is(err, apperr.ErrInvalidWiki) {
		t.Errorf("err = %v, want ErrInvalidWiki", err)
	}
}
