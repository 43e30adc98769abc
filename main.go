// Command demys is a modal, keyboard-driven terminal text editor with a
// tiled window manager, tabbed containers, popup dialogs, a command
// line, and an integrated filesystem explorer (spec §1). This file wires
// the window tree to a real terminal: argument parsing (spec §6),
// term.Driver for raw input and screen control, and the compositing
// canvas for output. Grounded on original_source/src/main.rs's
// enable_raw_mode/EnterAlternateScreen setup and its read-dispatch-render
// loop.
package main

import (
	"fmt"
	"os"

	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/fswindow"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/term"
	"github.com/wnuspl/demys/textwindow"
	"github.com/wnuspl/demys/window"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run builds the initial window tree from paths, drives the terminal
// until the manager requests exit, and returns the process exit code
// (spec §6: "zero on normal exit; non-zero reserved for unrecoverable
// terminal-setup failure").
func run(paths []string) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demys: %v\n", err)
		return 1
	}

	startTabs, err := openStartTabs(paths)
	if err != nil {
		// Reported before the alternate screen is entered, per
		// SPEC_FULL's ambient-stack logging rules: nothing is written
		// to stdout/stderr once the screen is active.
		fmt.Fprintf(os.Stderr, "demys: %v\n", err)
		return 1
	}

	driver, err := term.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demys: %v\n", err)
		return 1
	}
	defer driver.Close()

	dim, err := driver.Size()
	if err != nil {
		dim = plot.New(24, 80)
	}

	mgr := window.NewManager(dim, cwd)
	mgr.NewExplorer = func(cwd string) window.Window { return fswindow.New(cwd) }
	for _, w := range startTabs {
		mgr.AddWindow(w)
	}

	out := term.NewANSIWriter(driver.Flusher())
	redraw(mgr, out, driver)

	for ev := range driver.Events() {
		if re, ok := ev.(window.ResizeEvent); ok {
			mgr.Resize(re.Dim)
		} else {
			mgr.Event(ev)
		}
		mgr.Tick()
		if mgr.QuitRequested() {
			return 0
		}
		redraw(mgr, out, driver)
	}
	return 0
}

// openStartTabs builds the editor's initial top-level windows (spec
// §6): a single filesystem explorer when no paths are given, or one text
// window per path otherwise, with a missing file becoming an empty
// unsaved buffer rather than an error.
func openStartTabs(paths []string) ([]window.Window, error) {
	if len(paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		return []window.Window{fswindow.New(cwd)}, nil
	}

	tabs := make([]window.Window, 0, len(paths))
	for _, p := range paths {
		tw, err := textwindow.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		tabs = append(tabs, tw)
	}
	return tabs, nil
}

// redraw produces a fresh canvas from the window tree and flushes its
// diffed command stream to the terminal (spec §2's per-iteration control
// flow).
func redraw(mgr *window.Manager, out *term.ANSIWriter, driver *term.Driver) {
	dim, err := driver.Size()
	if err != nil {
		return
	}
	c := canvas.New(dim)
	mgr.Draw(c)
	c.QueueWrite(out, plot.New(0, 0))
	driver.Flusher().Flush()
}
