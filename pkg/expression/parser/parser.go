// Package parser turns ranking expression text into an expression.Node tree.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/ast"
	exprparser "github.com/expr-lang/expr/parser"

	"github.com/himkwtn/expression-mongo/pkg/expression"
)

var ErrEmptyExpression = errors.New("expression is empty")

// ParseError wraps a syntax error reported for the source text.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse expression %q: %s", e.Source, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses infix arithmetic with function calls, e.g.
// "sharedCount + (commentsCount / 3) - exp_decay(createdAt, 1, 1)".
//
// Every construct the underlying parser knows is converted; nothing is
// rejected here that is syntactically correct. Deciding what is allowed is
// left to expression.Validate.
func Parse(source string) (expression.Node, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &ParseError{Source: source, Err: ErrEmptyExpression}
	}
	tree, err := exprparser.Parse(source)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return convert(tree.Node), nil
}

func convert(node ast.Node) expression.Node {
	if node == nil {
		return &expression.UnsupportedExpression{Kind: "nil"}
	}
	switch n := node.(type) {
	case *ast.IntegerNode:
		return &expression.Literal{Value: float64(n.Value)}
	case *ast.FloatNode:
		return &expression.Literal{Value: n.Value}
	case *ast.StringNode:
		return &expression.Literal{Value: n.Value}
	case *ast.BoolNode:
		return &expression.Literal{Value: n.Value}
	case *ast.IdentifierNode:
		return &expression.Identifier{Name: n.Value}
	case *ast.BinaryNode:
		return &expression.BinaryExpression{
			Operator: n.Operator,
			Left:     convert(n.Left),
			Right:    convert(n.Right),
		}
	case *ast.UnaryNode:
		return &expression.UnaryExpression{
			Operator: n.Operator,
			Argument: convert(n.Node),
		}
	case *ast.CallNode:
		return &expression.CallExpression{
			Callee:    convert(n.Callee),
			Arguments: convertAll(n.Arguments),
		}
	case *ast.BuiltinNode:
		return &expression.CallExpression{
			Callee:    &expression.Identifier{Name: n.Name},
			Arguments: convertAll(n.Arguments),
		}
	case *ast.MemberNode:
		return &expression.MemberExpression{
			Object:   convert(n.Node),
			Property: convertProperty(n.Property),
		}
	case *ast.ChainNode:
		return convert(n.Node)
	default:
		return &expression.UnsupportedExpression{
			Kind: fmt.Sprintf("%T", node),
			Text: node.String(),
		}
	}
}

func convertAll(nodes []ast.Node) []expression.Node {
	converted := make([]expression.Node, len(nodes))
	for i, n := range nodes {
		converted[i] = convert(n)
	}
	return converted
}

// a.b stores its property as a string constant
func convertProperty(node ast.Node) expression.Node {
	if s, ok := node.(*ast.StringNode); ok {
		return &expression.Identifier{Name: s.Value}
	}
	return convert(node)
}
