package expression

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVariable   = errors.New("invalid variable")
	ErrInvalidFunction   = errors.New("invalid function")
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrNonNumericLiteral is returned by CompileStrict when Validate reports
	// the tree as not valid without raising an error.
	ErrNonNumericLiteral = errors.New("literal is not a number")
	// ErrNoLowering is returned by CompileStrict when a validated node has no
	// operator tree equivalent.
	ErrNoLowering = errors.New("no operator tree lowering")
)

// InvalidVariableError reports an identifier missing from the whitelist.
type InvalidVariableError struct {
	Name string
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("invalid variable %s", e.Name)
}

func (e *InvalidVariableError) Is(target error) bool {
	return target == ErrInvalidVariable
}

// InvalidFunctionError reports a call to an unknown function or a call with
// the wrong number of arguments.
type InvalidFunctionError struct {
	Name  string
	Arity int
}

func (e *InvalidFunctionError) Error() string {
	return fmt.Sprintf("invalid function %s", e.Name)
}

func (e *InvalidFunctionError) Is(target error) bool {
	return target == ErrInvalidFunction
}

// InvalidExpressionError reports a node outside the grammar. Node holds the
// JSON form of the offending node.
type InvalidExpressionError struct {
	Node string
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid expression %s", e.Node)
}

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

func newInvalidExpressionError(node Node) *InvalidExpressionError {
	return &InvalidExpressionError{Node: describeNode(node)}
}
