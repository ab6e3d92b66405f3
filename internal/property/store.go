// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package property holds the current values of the properties declared by a
// schema and applies typed assignment to them.
package property

import (
	"strconv"
	"strings"

	"github.com/holomush/dynconf/internal/condition"
	"github.com/holomush/dynconf/internal/schema"
	"github.com/holomush/dynconf/internal/value"
)

// Entry is one row of the menu: a key-valid property with its position in
// the schema, its display options and its current value.
type Entry struct {
	Index      int
	Definition schema.Definition
	Options    []string
	Value      value.Value
}

// Store holds one value per declared property. Every value starts unset and
// changes only through a successful Assign.
//
// A Store is not safe for concurrent use.
type Store struct {
	schema *schema.Schema
	values []value.Value
}

var _ condition.Lookup = (*Store)(nil)

// NewStore creates a store with every property of s unset.
func NewStore(s *schema.Schema) *Store {
	return &Store{
		schema: s,
		values: make([]value.Value, s.Len()),
	}
}

// Schema returns the schema the store was built from.
func (st *Store) Schema() *schema.Schema { return st.schema }

// Definitions returns the declared properties in declaration order.
func (st *Store) Definitions() []schema.Definition { return st.schema.Definitions }

// Definition returns the definition of name.
func (st *Store) Definition(name string) (schema.Definition, bool) {
	return st.schema.Lookup(name)
}

// Value returns the current value of name. It implements condition.Lookup.
func (st *Store) Value(name string) (value.Value, bool) {
	i, ok := st.schema.Index(name)
	if !ok {
		return value.Value{}, false
	}
	return st.values[i], true
}

// Assign coerces raw to the declared kind of name and stores it.
// On failure the stored value is left unchanged.
func (st *Store) Assign(name, raw string) error {
	i, ok := st.schema.Index(name)
	if !ok {
		return ErrUnknownProperty(name)
	}
	def := st.schema.Definitions[i]

	v, err := st.coerce(def, raw)
	if err != nil {
		return err
	}
	st.values[i] = v
	return nil
}

func (st *Store) coerce(def schema.Definition, raw string) (value.Value, error) {
	switch def.Kind {
	case schema.KindChoice:
		if !def.HasChoice(raw) {
			return value.Value{}, ErrInvalidChoice(def.Name, raw, ReasonNotDeclared, def.Choices)
		}
		if !st.ValueValid(def.Name, raw) {
			return value.Value{}, ErrInvalidChoice(def.Name, raw, ReasonCondition, st.choices(def))
		}
		return value.StringValue(raw), nil

	case schema.KindInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return value.Value{}, ErrNotAnInteger(def.Name, raw)
		}
		return value.IntValue(n), nil

	case schema.KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return value.Value{}, ErrNotAFloat(def.Name, raw)
		}
		return value.FloatValue(f), nil

	default:
		return value.StringValue(raw), nil
	}
}

// KeyValid reports whether name is currently visible and settable.
// Undeclared names and evaluation errors count as not valid.
func (st *Store) KeyValid(name string) bool {
	if _, ok := st.schema.Index(name); !ok {
		return false
	}
	ok, err := st.schema.Rules.KeyValid(name, st)
	return err == nil && ok
}

// ValueValid reports whether candidate is currently offerable for name.
// Evaluation errors count as not valid.
func (st *Store) ValueValid(name, candidate string) bool {
	ok, err := st.schema.Rules.ValueValid(name, candidate, st)
	return err == nil && ok
}

// Options returns the display options of name: the declared type name for
// scalar properties, or the currently offerable choices for choice lists.
func (st *Store) Options(name string) ([]string, bool) {
	def, ok := st.schema.Lookup(name)
	if !ok {
		return nil, false
	}
	if def.Kind != schema.KindChoice {
		return []string{def.TypeName}, true
	}
	return st.choices(def), true
}

func (st *Store) choices(def schema.Definition) []string {
	out := make([]string, 0, len(def.Choices))
	for _, c := range def.Choices {
		if st.ValueValid(def.Name, c) {
			out = append(out, c)
		}
	}
	return out
}

// Visible returns the key-valid properties in declaration order. Index is
// the declaration position, so hidden properties leave gaps.
func (st *Store) Visible() []Entry {
	entries := make([]Entry, 0, len(st.values))
	for i, def := range st.schema.Definitions {
		if !st.KeyValid(def.Name) {
			continue
		}
		opts, _ := st.Options(def.Name)
		entries = append(entries, Entry{
			Index:      i,
			Definition: def,
			Options:    opts,
			Value:      st.values[i],
		})
	}
	return entries
}

// At returns the definition declared at index i.
func (st *Store) At(i int) (schema.Definition, bool) {
	if i < 0 || i >= len(st.schema.Definitions) {
		return schema.Definition{}, false
	}
	return st.schema.Definitions[i], true
}

// Resolve finds a property by exact name or unique prefix.
// Returns AmbiguousPropertyError if multiple properties match.
// Returns an UNKNOWN_PROPERTY error if no properties match.
func (st *Store) Resolve(nameOrPrefix string) (schema.Definition, error) {
	if def, ok := st.schema.Lookup(nameOrPrefix); ok {
		return def, nil
	}

	var matches []schema.Definition
	if nameOrPrefix != "" {
		for _, def := range st.schema.Definitions {
			if strings.HasPrefix(def.Name, nameOrPrefix) {
				matches = append(matches, def)
			}
		}
	}

	switch len(matches) {
	case 0:
		return schema.Definition{}, ErrUnknownProperty(nameOrPrefix)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return schema.Definition{}, &AmbiguousPropertyError{Prefix: nameOrPrefix, Matches: names}
	}
}
