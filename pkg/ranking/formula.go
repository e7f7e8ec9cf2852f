package ranking

import (
	"errors"
	"fmt"

	"github.com/himkwtn/expression-mongo/pkg/expression"
	"github.com/himkwtn/expression-mongo/pkg/expression/parser"
)

var ErrInvalidFormula = errors.New("invalid formula")

// Formula is a ranking expression that passed validation, together with its
// compiled operator tree.
type Formula struct {
	Source    string   `json:"source"`
	Tree      any      `json:"tree"`
	Variables []string `json:"variables"`
}

// NewFormula parses, validates and compiles source.
func NewFormula(source string, whitelist expression.Whitelist) (*Formula, error) {
	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return FromNode(source, node, whitelist)
}

// FromNode builds a formula from an already parsed tree. source is only kept
// for reference.
func FromNode(source string, node expression.Node, whitelist expression.Whitelist) (*Formula, error) {
	tree, err := expression.CompileStrict(node, whitelist)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormula, err)
	}
	return &Formula{
		Source:    source,
		Tree:      tree,
		Variables: expression.ExtractVariables(node),
	}, nil
}

// Fields returns the referenced variables without duplicates.
func (f *Formula) Fields() []string {
	seen := map[string]bool{}
	fields := []string{}
	for _, v := range f.Variables {
		if !seen[v] {
			seen[v] = true
			fields = append(fields, v)
		}
	}
	return fields
}
