// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package condition

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

// CodeInvalidExpression marks a textual condition that does not parse.
const CodeInvalidExpression = "INVALID_EXPRESSION"

// exprLexer tokenizes textual conditions such as `count >= 3` or
// `mode in ["A", "B"]`. Word operators (eq, like, in, ...) lex as Ident and
// are resolved through ParseOperator.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Operator", Pattern: `==|!=|<>|<=|>=|<|>|=`},
	{Name: "Ident", Pattern: `[a-zA-Z_][\w.-]*`},
	{Name: "Punct", Pattern: `[\[\],]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// exprAST is the grammar of a textual condition:
//
//	operand operator literal
type exprAST struct {
	Operand  string      `parser:"@Ident"`
	Operator string      `parser:"@(Operator | Ident)"`
	Literal  *literalAST `parser:"@@"`
}

type literalAST struct {
	Str  *string  `parser:"  @String"`
	Num  *string  `parser:"| @Number"`
	List *listAST `parser:"| @@"`
}

type listAST struct {
	Open  string        `parser:"@'['"`
	Items []*literalAST `parser:"( @@ ( ',' @@ )* )? ']'"`
}

// exprParser is the singleton participle parser instance.
var exprParser *participle.Parser[exprAST]

func init() {
	var err error
	exprParser, err = participle.Build[exprAST](
		participle.Lexer(exprLexer),
		participle.Unquote("String"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build condition parser: %v", err))
	}
}

// ParseExpression parses a textual condition into a Condition. The operator
// must be one ParseOperator accepts and the literal must fit it.
func ParseExpression(text string) (Condition, error) {
	ast, err := exprParser.ParseString("", text)
	if err != nil {
		return Condition{}, oops.Code(CodeInvalidExpression).
			With("expression", text).
			Wrapf(err, "parsing condition %q", text)
	}

	op, err := ParseOperator(ast.Operator)
	if err != nil {
		return Condition{}, err
	}

	lit, err := ast.Literal.toLiteral()
	if err != nil {
		return Condition{}, oops.Code(CodeInvalidExpression).
			With("expression", text).
			Wrapf(err, "parsing condition %q", text)
	}
	return New(ast.Operand, op, lit)
}

func (l *literalAST) toLiteral() (Literal, error) {
	switch {
	case l.Str != nil:
		return StringLiteral(*l.Str), nil
	case l.Num != nil:
		return numberLiteral(*l.Num)
	case l.List != nil:
		items := make([]Literal, 0, len(l.List.Items))
		for _, item := range l.List.Items {
			lit, err := item.toLiteral()
			if err != nil {
				return Literal{}, err
			}
			items = append(items, lit)
		}
		return ListLiteral(items...), nil
	default:
		return Literal{}, nil
	}
}

// numberLiteral keeps integers exact and parses everything else as a float.
func numberLiteral(text string) (Literal, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntLiteral(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid number %q", text)
	}
	return NumberLiteral(f), nil
}
