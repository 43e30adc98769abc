package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wnuspl/demys/fswindow"
	"github.com/wnuspl/demys/textwindow"
)

func TestOpenStartTabsNoPathsOpensExplorer(t *testing.T) {
	tabs, err := openStartTabs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tabs) != 1 {
		t.Fatalf("want 1 tab, got %d", len(tabs))
	}
	if _, ok := tabs[0].(*fswindow.FSWindow); !ok {
		t.Fatalf("want *fswindow.FSWindow, got %T", tabs[0])
	}
}

func TestOpenStartTabsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tabs, err := openStartTabs([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tabs) != 1 {
		t.Fatalf("want 1 tab, got %d", len(tabs))
	}
	tw, ok := tabs[0].(*textwindow.TextWindow)
	if !ok {
		t.Fatalf("want *textwindow.TextWindow, got %T", tabs[0])
	}
	if tw.Name() != path {
		t.Fatalf("name = %q, want %q", tw.Name(), path)
	}
}

func TestOpenStartTabsMissingFileIsUnsavedEmptyBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.txt")

	tabs, err := openStartTabs([]string{path})
	if err != nil {
		t.Fatalf("missing file should not be a hard error: %v", err)
	}
	tw := tabs[0].(*textwindow.TextWindow)
	if tw.Name() != path {
		t.Fatalf("name = %q, want %q", tw.Name(), path)
	}
}

func TestOpenStartTabsMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	os.WriteFile(a, []byte("a"), 0o644)
	os.WriteFile(b, []byte("b"), 0o644)

	tabs, err := openStartTabs([]string{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tabs) != 2 {
		t.Fatalf("want 2 tabs, got %d", len(tabs))
	}
}
