// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/dynconf/internal/property"
	"github.com/holomush/dynconf/internal/schema"
	"github.com/holomush/dynconf/internal/value"
)

func sampleEntries() []property.Entry {
	return []property.Entry{
		{
			Index:      0,
			Definition: schema.Definition{Name: "mode", Kind: schema.KindChoice, TypeName: schema.TypeChoice, Choices: []string{"A", "B"}},
			Options:    []string{"A", "B"},
			Value:      value.StringValue("B"),
		},
		{
			Index:      2,
			Definition: schema.Definition{Name: "ratio", Kind: schema.KindFloat, TypeName: schema.TypeFloat},
			Options:    []string{"float"},
			Value:      value.FloatValue(7),
		},
		{
			Index:      3,
			Definition: schema.Definition{Name: "count", Kind: schema.KindInteger, TypeName: schema.TypeInt},
			Options:    []string{"int"},
		},
	}
}

func TestPlainRenderer_Menu(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlainRenderer{}.Menu(&buf, sampleEntries()))

	expected := "\n*********\n\n" +
		"0 -> mode ([A, B]) :  B\n" +
		"2 -> ratio (float) :  7.0\n" +
		"3 -> count (int) :  <unset>\n"
	assert.Equal(t, expected, buf.String())
}

func TestPlainRenderer_ListingHasNoBanner(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlainRenderer{}.Listing(&buf, sampleEntries()))
	assert.NotContains(t, buf.String(), "*********")
	assert.Contains(t, buf.String(), "0 -> mode ([A, B]) :  B\n")
}

func TestPlainRenderer_EmptyChoiceList(t *testing.T) {
	entries := []property.Entry{{
		Definition: schema.Definition{Name: "mode", Kind: schema.KindChoice, Choices: []string{"A"}},
		Options:    []string{},
	}}

	var buf bytes.Buffer
	require.NoError(t, PlainRenderer{}.Listing(&buf, entries))
	assert.Equal(t, "0 -> mode ([]) :  <unset>\n", buf.String())
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &TableRenderer{Title: "Settings"}
	require.NoError(t, r.Listing(&buf, sampleEntries()))

	out := buf.String()
	for _, want := range []string{"Settings", "#", "PROPERTY", "OPTIONS", "VALUE", "mode", "[A, B]", "7.0", "<unset>"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "╭", "rounded style")
}

func TestTableRenderer_Color(t *testing.T) {
	text.EnableColors()

	var plain, colored bytes.Buffer
	require.NoError(t, (&TableRenderer{}).Listing(&plain, sampleEntries()))
	require.NoError(t, (&TableRenderer{Color: true}).Listing(&colored, sampleEntries()))

	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestNewRenderer(t *testing.T) {
	assert.IsType(t, PlainRenderer{}, NewRenderer(StylePlain, "", false))
	assert.IsType(t, PlainRenderer{}, NewRenderer("fancy", "", false))
	assert.IsType(t, &TableRenderer{}, NewRenderer(StyleTable, "x", true))
}
