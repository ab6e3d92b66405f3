// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonNode decodes a JSON document into the node tree yaml.Unmarshal would
// produce, keeping key order and line numbers. JSON input never goes through
// the YAML parser, which rejects some JSON string escapes such as `\/`.
// Repeated keys in an object are rejected, as the YAML parser does.
func jsonNode(data []byte) (*yaml.Node, error) {
	b := &jsonNodeBuilder{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	b.dec.UseNumber()

	root, err := b.value()
	if err != nil {
		return nil, err
	}
	if _, err := b.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("line %d: unexpected data after the document", b.line())
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: root.Line, Content: []*yaml.Node{root}}, nil
}

type jsonNodeBuilder struct {
	data []byte
	dec  *json.Decoder
}

// line returns the 1-based line of the next token. The decoder's offset
// sits right after the previous token, so separators are skipped first.
func (b *jsonNodeBuilder) line() int {
	off := min(int(b.dec.InputOffset()), len(b.data))
	for off < len(b.data) && strings.IndexByte(" \t\r\n,:", b.data[off]) >= 0 {
		off++
	}
	return bytes.Count(b.data[:off], []byte("\n")) + 1
}

func (b *jsonNodeBuilder) value() (*yaml.Node, error) {
	line := b.line()
	tok, err := b.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return b.mapping(line)
		case '[':
			return b.sequence(line)
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", line, t)
		}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t, Style: yaml.DoubleQuotedStyle, Line: line}, nil
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag(t), Value: t.String(), Line: line}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t), Line: line}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected token %v", line, tok)
	}
}

func (b *jsonNodeBuilder) mapping(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}
	seen := make(map[string]int)
	for b.dec.More() {
		keyLine := b.line()
		tok, err := b.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("line %d: object key must be a string", keyLine)
		}
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("line %d: key %q defined more than once (first at line %d)", keyLine, key, first)
		}
		seen[key] = keyLine
		val, err := b.value()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Style: yaml.DoubleQuotedStyle, Line: keyLine},
			val)
	}
	if _, err := b.dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return n, nil
}

func (b *jsonNodeBuilder) sequence(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}
	for b.dec.More() {
		val, err := b.value()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, val)
	}
	if _, err := b.dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return n, nil
}

// numberTag tags integers that fit int64 as !!int and every other number as
// !!float, matching how yaml.v3 resolves the same text.
func numberTag(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			return "!!int"
		}
	}
	return "!!float"
}
