// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/holomush/dynconf/internal/condition"
)

// rawDocument is the first decoding stage. "all" stays a node so that the
// declaration order of its keys is kept.
type rawDocument struct {
	Schema          string                               `yaml:"$schema"`
	Title           string                               `yaml:"title"`
	Version         string                               `yaml:"version"`
	All             yaml.Node                            `yaml:"all"`
	KeyConditions   map[string][]rawCondition            `yaml:"key_conditions"`
	ValueConditions map[string]map[string][]rawCondition `yaml:"value_conditions"`
}

// rawCondition decodes either a [operand, operator, literal] triple or a
// textual expression.
type rawCondition struct {
	cond condition.Condition
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (rc *rawCondition) UnmarshalYAML(n *yaml.Node) error {
	n = resolveAlias(n)
	switch {
	case n.Kind == yaml.ScalarNode && n.Tag == "!!str":
		c, err := condition.ParseExpression(n.Value)
		if err != nil {
			return parseError("line %d: %v", n.Line, err)
		}
		rc.cond = c
		return nil

	case n.Kind == yaml.SequenceNode:
		if len(n.Content) != 3 {
			return parseError("line %d: condition must be [operand, operator, literal], got %d elements", n.Line, len(n.Content))
		}
		operand, err := scalarString(n.Content[0], "operand")
		if err != nil {
			return err
		}
		opText, err := scalarString(n.Content[1], "operator")
		if err != nil {
			return err
		}
		op, err := condition.ParseOperator(opText)
		if err != nil {
			return parseError("line %d: %v", n.Content[1].Line, err)
		}
		lit, err := decodeLiteral(n.Content[2], true)
		if err != nil {
			return err
		}
		// Operand existence is checked once all properties are known.
		c, err := condition.New(operand, op, lit)
		if err != nil {
			return parseError("line %d: %v", n.Line, err)
		}
		rc.cond = c
		return nil

	default:
		return parseError("line %d: condition must be a triple or an expression string", n.Line)
	}
}

// Parse parses and validates a definition document. JSON input is decoded
// strictly by encoding/json and everything else by the YAML parser; both
// formats produce the same Schema.
// Any failure is a SCHEMA_PARSE error and no partial schema is returned.
func Parse(data []byte) (*Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, parseError("definition document is empty")
	}

	var root *yaml.Node
	if trimmed[0] == '{' {
		var strict any
		if err := json.Unmarshal(trimmed, &strict); err != nil {
			return nil, wrapParse(err, "invalid JSON")
		}
		n, err := jsonNode(data)
		if err != nil {
			return nil, wrapParse(err, "invalid JSON")
		}
		root = n
	} else {
		root = &yaml.Node{}
		if err := yaml.Unmarshal(data, root); err != nil {
			return nil, wrapParse(err, "invalid document")
		}
	}

	var generic any
	if err := root.Decode(&generic); err != nil {
		return nil, wrapParse(err, "invalid document")
	}
	if err := validateDocument(generic); err != nil {
		return nil, wrapParse(err, "document does not match schema")
	}

	var doc rawDocument
	if err := root.Decode(&doc); err != nil {
		if IsParseError(err) {
			return nil, err
		}
		return nil, wrapParse(err, "invalid document")
	}

	defs, err := decodeDefinitions(&doc.All)
	if err != nil {
		return nil, err
	}

	rules := condition.Rules{
		Key:   make(map[string][]condition.Condition, len(doc.KeyConditions)),
		Value: make(map[string]map[string][]condition.Condition, len(doc.ValueConditions)),
	}
	for name, raws := range doc.KeyConditions {
		rules.Key[name] = unwrapConditions(raws)
	}
	for name, byValue := range doc.ValueConditions {
		table := make(map[string][]condition.Condition, len(byValue))
		for candidate, raws := range byValue {
			table[candidate] = unwrapConditions(raws)
		}
		rules.Value[name] = table
	}

	s, err := New(defs, rules)
	if err != nil {
		return nil, err
	}
	s.Title = doc.Title

	if doc.Version != "" {
		v, err := semver.NewVersion(doc.Version)
		if err != nil {
			return nil, wrapParse(err, "version %q", doc.Version)
		}
		s.Version = v
	}

	return s, nil
}

// Load reads and parses a definition document from r.
func Load(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapParse(err, "reading definition document")
	}
	return Parse(data)
}

// LoadFile reads and parses the definition document at path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, wrapParse(err, "reading definition document %s", path)
	}
	return Parse(data)
}

// decodeDefinitions walks the "all" mapping in document order.
func decodeDefinitions(n *yaml.Node) ([]Definition, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, parseError("all: must be a mapping of property name to type")
	}

	defs := make([]Definition, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], resolveAlias(n.Content[i+1])
		name := key.Value

		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag != "!!str" || val.Value == "" {
				return nil, parseError("all.%s (line %d): type must be a non-empty string or a list of choices", name, val.Line)
			}
			defs = append(defs, scalarDefinition(name, val.Value))

		case yaml.SequenceNode:
			choices := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				item = resolveAlias(item)
				if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
					return nil, parseError("all.%s (line %d): choices must be strings", name, item.Line)
				}
				choices = append(choices, item.Value)
			}
			defs = append(defs, Definition{Name: name, Kind: KindChoice, TypeName: TypeChoice, Choices: choices})

		default:
			return nil, parseError("all.%s (line %d): type must be a string or a list of choices", name, val.Line)
		}
	}
	return defs, nil
}

func scalarDefinition(name, typeName string) Definition {
	switch typeName {
	case TypeInt:
		return Definition{Name: name, Kind: KindInteger, TypeName: typeName}
	case TypeFloat:
		return Definition{Name: name, Kind: KindFloat, TypeName: typeName}
	default:
		return Definition{Name: name, Kind: KindString, TypeName: typeName}
	}
}

// decodeLiteral converts a YAML node into a condition literal. Lists are
// accepted only at the top level.
func decodeLiteral(n *yaml.Node, allowList bool) (condition.Literal, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return condition.StringLiteral(n.Value), nil
		case "!!int":
			var i int64
			if err := n.Decode(&i); err == nil {
				return condition.IntLiteral(i), nil
			}
			var f float64
			if err := n.Decode(&f); err != nil {
				return condition.Literal{}, parseError("line %d: invalid number %q", n.Line, n.Value)
			}
			return condition.NumberLiteral(f), nil
		case "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return condition.Literal{}, parseError("line %d: invalid number %q", n.Line, n.Value)
			}
			return condition.NumberLiteral(f), nil
		default:
			return condition.Literal{}, parseError("line %d: literal must be a string or a number, got %s", n.Line, n.Tag)
		}

	case yaml.SequenceNode:
		if !allowList {
			return condition.Literal{}, parseError("line %d: nested lists are not allowed", n.Line)
		}
		items := make([]condition.Literal, 0, len(n.Content))
		for _, item := range n.Content {
			lit, err := decodeLiteral(item, false)
			if err != nil {
				return condition.Literal{}, err
			}
			items = append(items, lit)
		}
		return condition.ListLiteral(items...), nil

	default:
		return condition.Literal{}, parseError("line %d: literal must be a string, a number or a list", n.Line)
	}
}

func scalarString(n *yaml.Node, what string) (string, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", parseError("line %d: %s must be a string", n.Line, what)
	}
	return n.Value, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func unwrapConditions(raws []rawCondition) []condition.Condition {
	out := make([]condition.Condition, len(raws))
	for i, r := range raws {
		out[i] = r.cond
	}
	return out
}
