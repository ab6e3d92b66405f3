// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/holomush/dynconf/internal/property"
	"github.com/holomush/dynconf/internal/schema"
)

// Rendering styles.
const (
	StylePlain = "plain"
	StyleTable = "table"
)

const banner = "\n*********\n\n"

// Renderer draws the property listing.
type Renderer interface {
	// Menu draws the listing shown before each selection prompt.
	Menu(w io.Writer, entries []property.Entry) error
	// Listing draws the final listing shown on exit.
	Listing(w io.Writer, entries []property.Entry) error
}

// NewRenderer returns the renderer for style. Unknown styles fall back to
// plain.
func NewRenderer(style, title string, color bool) Renderer {
	if style == StyleTable {
		return &TableRenderer{Title: title, Color: color}
	}
	return PlainRenderer{}
}

// PlainRenderer draws one "idx -> name (options) :  value" line per entry.
type PlainRenderer struct{}

// Menu implements Renderer.
func (p PlainRenderer) Menu(w io.Writer, entries []property.Entry) error {
	if _, err := io.WriteString(w, banner); err != nil {
		return err
	}
	return p.Listing(w, entries)
}

// Listing implements Renderer.
func (PlainRenderer) Listing(w io.Writer, entries []property.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%d -> %s (%s) :  %s\n",
			e.Index, e.Definition.Name, formatOptions(e), e.Value); err != nil {
			return err
		}
	}
	return nil
}

// TableRenderer draws entries as a go-pretty table.
type TableRenderer struct {
	Title string
	Color bool
}

// Menu implements Renderer.
func (r *TableRenderer) Menu(w io.Writer, entries []property.Entry) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return r.Listing(w, entries)
}

// Listing implements Renderer.
func (r *TableRenderer) Listing(w io.Writer, entries []property.Entry) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if r.Title != "" {
		t.SetTitle(r.Title)
	}

	t.AppendHeader(table.Row{
		r.header("#"),
		r.header("PROPERTY"),
		r.header("OPTIONS"),
		r.header("VALUE"),
	})
	for _, e := range entries {
		val := e.Value.String()
		if r.Color && !e.Value.IsSet() {
			val = text.FgHiBlack.Sprint(val)
		}
		t.AppendRow(table.Row{e.Index, e.Definition.Name, formatOptions(e), val})
	}

	t.Render()
	return nil
}

func (r *TableRenderer) header(s string) string {
	if r.Color {
		return text.FgHiCyan.Sprint(s)
	}
	return s
}

// formatOptions renders the type name of a scalar property or the bracketed
// list of offerable choices.
func formatOptions(e property.Entry) string {
	if e.Definition.Kind == schema.KindChoice {
		return formatList(e.Options)
	}
	return strings.Join(e.Options, ", ")
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
