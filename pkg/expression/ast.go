// Package expression validates and compiles ranking expressions into MongoDB
// aggregation operator trees.
package expression

import (
	"encoding/json"
)

// Node is a node of a ranking expression syntax tree. The set of node kinds
// is closed: only the types declared in this file implement it.
type Node interface {
	expressionNode()
}

// Literal is a constant. Only numeric values are part of the grammar, but the
// parser may hand over strings or booleans as well.
type Literal struct {
	Value any
}

type Identifier struct {
	Name string
}

type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// CallExpression invokes a named function. Callee is usually an *Identifier,
// other shapes (e.g. member access) are rejected by Validate.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

// Node kinds below are produced by the parser but are outside the grammar.

type UnaryExpression struct {
	Operator string
	Argument Node
}

type MemberExpression struct {
	Object   Node
	Property Node
}

// UnsupportedExpression stands for any parser construct without a dedicated
// node kind (conditionals, arrays, maps, closures...).
type UnsupportedExpression struct {
	Kind string
	Text string
}

func (*Literal) expressionNode()               {}
func (*Identifier) expressionNode()            {}
func (*BinaryExpression) expressionNode()      {}
func (*CallExpression) expressionNode()        {}
func (*UnaryExpression) expressionNode()       {}
func (*MemberExpression) expressionNode()      {}
func (*UnsupportedExpression) expressionNode() {}

// Node type names used in the JSON form of the tree.
const (
	NODE_TYPE_LITERAL     = "Literal"
	NODE_TYPE_IDENTIFIER  = "Identifier"
	NODE_TYPE_BINARY      = "BinaryExpression"
	NODE_TYPE_CALL        = "CallExpression"
	NODE_TYPE_UNARY       = "UnaryExpression"
	NODE_TYPE_MEMBER      = "MemberExpression"
	NODE_TYPE_UNSUPPORTED = "UnsupportedExpression"
)

func (n *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{NODE_TYPE_LITERAL, n.Value})
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}{NODE_TYPE_IDENTIFIER, n.Name})
}

func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Left     Node   `json:"left"`
		Right    Node   `json:"right"`
	}{NODE_TYPE_BINARY, n.Operator, n.Left, n.Right})
}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	args := n.Arguments
	if args == nil {
		args = []Node{}
	}
	return json.Marshal(struct {
		Type      string `json:"type"`
		Callee    Node   `json:"callee"`
		Arguments []Node `json:"arguments"`
	}{NODE_TYPE_CALL, n.Callee, args})
}

func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Argument Node   `json:"argument"`
	}{NODE_TYPE_UNARY, n.Operator, n.Argument})
}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Object   Node   `json:"object"`
		Property Node   `json:"property"`
	}{NODE_TYPE_MEMBER, n.Object, n.Property})
}

func (n *UnsupportedExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Kind string `json:"kind"`
		Text string `json:"text"`
	}{NODE_TYPE_UNSUPPORTED, n.Kind, n.Text})
}

// describeNode renders a node for diagnostics. It never fails.
func describeNode(node Node) string {
	if node == nil {
		return "null"
	}
	b, err := json.Marshal(node)
	if err != nil {
		return "<unprintable expression>"
	}
	return string(b)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
