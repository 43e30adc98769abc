// Package fswindow implements the filesystem explorer leaf window (spec
// §4.11): a lazily-expanded directory tree, rendered indented, that
// opens a text window on Enter over a file and toggles expansion on
// Enter over a directory.
package fswindow

import (
	"os"
	"path/filepath"
	"strings"
)

// DirectoryEntry is one node of the lazily-expanded filesystem tree.
// Ported from original_source/src/window/fswindow.rs's DirectoryRep.
// Children is populated only while IsOpen; closing a directory discards
// them rather than remembering what was previously expanded, matching
// the original.
type DirectoryEntry struct {
	Children []*DirectoryEntry
	Dir      string
	Name     string
	IsDir    bool
	IsOpen   bool
}

// NewRoot returns a DirectoryEntry rooted at path, already opened.
func NewRoot(path string) *DirectoryEntry {
	d := &DirectoryEntry{
		Dir:   path,
		Name:  filepath.Base(path),
		IsDir: true,
	}
	d.Open()
	return d
}

// Open (re)reads the directory's immediate children. A no-op on a file
// entry.
func (d *DirectoryEntry) Open() error {
	if !d.IsDir {
		return nil
	}
	d.Children = nil
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		d.IsOpen = true
		return err
	}
	for _, e := range entries {
		d.Children = append(d.Children, &DirectoryEntry{
			Dir:   filepath.Join(d.Dir, e.Name()),
			Name:  e.Name(),
			IsDir: e.IsDir(),
		})
	}
	d.IsOpen = true
	return nil
}

// Close discards the children and marks the directory collapsed.
func (d *DirectoryEntry) Close() {
	if !d.IsDir {
		return
	}
	d.Children = nil
	d.IsOpen = false
}

// mapLineChild walks the tree depth-first pre-order, decrementing
// remaining once per node visited, returning the node at which it
// reaches zero (or nil if the tree has fewer visible lines than that).
func (d *DirectoryEntry) mapLineChild(remaining *int) *DirectoryEntry {
	if *remaining == 0 {
		return d
	}
	*remaining--
	for _, c := range d.Children {
		if found := c.mapLineChild(remaining); found != nil {
			return found
		}
	}
	return nil
}

// At resolves a 0-based visible line number (depth-first pre-order over
// currently-open directories) to the node displayed there, or nil if
// line is out of range.
func (d *DirectoryEntry) At(line int) *DirectoryEntry {
	r := line
	return d.mapLineChild(&r)
}

// String renders the tree as indented text: a leaf file gets just its
// name, a closed directory is prefixed "> ", an open one "v " followed
// by its children each further indented one tab, joined with a newline
// between siblings but never a trailing one after the last.
func (d *DirectoryEntry) String() string { return d.stringIndent("") }

func (d *DirectoryEntry) stringIndent(indent string) string {
	if !d.IsDir {
		return indent + d.Name
	}
	if !d.IsOpen {
		return indent + "> " + d.Name
	}

	var b strings.Builder
	b.WriteString(indent + "v " + d.Name)

	childIndent := "\t" + indent
	for _, c := range d.Children {
		b.WriteString("\n")
		b.WriteString(c.stringIndent(childIndent))
	}
	return b.String()
}
