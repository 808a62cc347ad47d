// Package commands implements the signdesk subcommands.
package commands

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table writer rendering to w, styled for a terminal when
// w is one and plain otherwise.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if isTerminal(w) {
		t.SetStyle(table.StyleLight)
		t.Style().Color.Header = text.Colors{text.Bold}
	} else {
		t.SetStyle(table.StyleDefault)
		t.Style().Options.SeparateRows = false
	}
	return t
}
