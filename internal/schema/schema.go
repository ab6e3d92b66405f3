// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package schema loads property definitions and their condition tables from
// a JSON or YAML document.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/holomush/dynconf/internal/condition"
)

// Kind is the declared type of a property.
type Kind int

// Property kinds.
const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindChoice
)

// Type descriptors with fixed meaning. Any other non-empty descriptor string
// declares a freeform string property.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeChoice = "choice"
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Definition declares one configurable property. Definitions are immutable
// once a Schema is built.
type Definition struct {
	Name     string
	Kind     Kind
	TypeName string   // declared descriptor, e.g. "int" or "path"
	Choices  []string // ordered; only for KindChoice
}

// HasChoice reports whether v is one of the declared choices.
func (d Definition) HasChoice(v string) bool {
	return slices.Contains(d.Choices, v)
}

// Schema is a parsed, validated definition document.
type Schema struct {
	Title       string
	Version     *semver.Version
	Definitions []Definition
	Rules       condition.Rules

	index map[string]int
}

// Len returns the number of declared properties.
func (s *Schema) Len() int { return len(s.Definitions) }

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (Definition, bool) {
	i, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return s.Definitions[i], true
}

// Index returns the declaration position of name.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the declared property names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Definitions))
	for i, d := range s.Definitions {
		names[i] = d.Name
	}
	return names
}

// New builds a Schema from definitions and rules and validates them:
// names are unique and non-empty, choice lists are non-empty and distinct,
// every condition refers to declared properties, no key condition refers to
// its own property, and value conditions only gate declared choices.
// Conditions are rebuilt through condition.New so hand-assembled triples get
// the same checks as parsed ones.
func New(defs []Definition, rules condition.Rules) (*Schema, error) {
	s := &Schema{
		Definitions: make([]Definition, 0, len(defs)),
		index:       make(map[string]int, len(defs)),
		Rules: condition.Rules{
			Key:   make(map[string][]condition.Condition, len(rules.Key)),
			Value: make(map[string]map[string][]condition.Condition, len(rules.Value)),
		},
	}

	for _, d := range defs {
		if err := s.addDefinition(d); err != nil {
			return nil, err
		}
	}

	for name, conds := range rules.Key {
		if _, ok := s.index[name]; !ok {
			return nil, parseError("key_conditions.%s: property is not declared", name)
		}
		checked, err := s.checkConditions("key_conditions."+name, conds, name)
		if err != nil {
			return nil, err
		}
		s.Rules.Key[name] = checked
	}

	for name, byValue := range rules.Value {
		def, ok := s.Lookup(name)
		if !ok {
			return nil, parseError("value_conditions.%s: property is not declared", name)
		}
		if len(byValue) == 0 {
			continue
		}
		if def.Kind != KindChoice {
			return nil, parseError("value_conditions.%s: property is not choice-typed", name)
		}
		table := make(map[string][]condition.Condition, len(byValue))
		for candidate, conds := range byValue {
			if !def.HasChoice(candidate) {
				return nil, parseError("value_conditions.%s.%s: %q is not one of [%s]",
					name, candidate, candidate, strings.Join(def.Choices, ", "))
			}
			checked, err := s.checkConditions("value_conditions."+name+"."+candidate, conds, "")
			if err != nil {
				return nil, err
			}
			table[candidate] = checked
		}
		s.Rules.Value[name] = table
	}

	return s, nil
}

func (s *Schema) addDefinition(d Definition) error {
	if strings.TrimSpace(d.Name) == "" {
		return parseError("all: property name cannot be empty")
	}
	if _, exists := s.index[d.Name]; exists {
		return parseError("all.%s: property declared more than once", d.Name)
	}

	switch d.Kind {
	case KindChoice:
		if len(d.Choices) == 0 {
			return parseError("all.%s: choice list cannot be empty", d.Name)
		}
		seen := make(map[string]struct{}, len(d.Choices))
		for _, c := range d.Choices {
			if _, dup := seen[c]; dup {
				return parseError("all.%s: choice %q listed more than once", d.Name, c)
			}
			seen[c] = struct{}{}
		}
		d.Choices = slices.Clone(d.Choices)
		if d.TypeName == "" {
			d.TypeName = TypeChoice
		}
	case KindInteger:
		if d.TypeName == "" {
			d.TypeName = TypeInt
		}
	case KindFloat:
		if d.TypeName == "" {
			d.TypeName = TypeFloat
		}
	case KindString:
		if d.TypeName == "" {
			d.TypeName = "string"
		}
	default:
		return parseError("all.%s: unknown kind %d", d.Name, int(d.Kind))
	}

	s.index[d.Name] = len(s.Definitions)
	s.Definitions = append(s.Definitions, d)
	return nil
}

// checkConditions validates conds at path. self, when non-empty, is the
// property the conditions gate and may not appear as an operand.
func (s *Schema) checkConditions(path string, conds []condition.Condition, self string) ([]condition.Condition, error) {
	out := make([]condition.Condition, 0, len(conds))
	for i, c := range conds {
		at := fmt.Sprintf("%s[%d]", path, i)
		if _, ok := s.index[c.Operand]; !ok {
			return nil, parseError("%s: operand %q is not a declared property", at, c.Operand)
		}
		if self != "" && c.Operand == self {
			return nil, parseError("%s: key condition of %q cannot refer to itself", at, self)
		}
		rebuilt, err := condition.New(c.Operand, c.Operator, c.Literal)
		if err != nil {
			return nil, parseError("%s: %v", at, err)
		}
		out = append(out, rebuilt)
	}
	return out, nil
}
