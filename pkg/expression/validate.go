package expression

import (
	"sort"
)

// Function names known to the compiler.
const (
	FUNCTION_EXP       = "exp"
	FUNCTION_SIGMOID   = "sigmoid"
	FUNCTION_EXP_DECAY = "exp_decay"
)

// FunctionArity maps every callable function to its required number of
// arguments.
var FunctionArity = map[string]int{
	FUNCTION_EXP:       2,
	FUNCTION_SIGMOID:   3,
	FUNCTION_EXP_DECAY: 3,
}

// Whitelist is the set of variable names an expression may reference.
type Whitelist map[string]struct{}

func NewWhitelist(names ...string) Whitelist {
	wl := make(Whitelist, len(names))
	for _, name := range names {
		wl[name] = struct{}{}
	}
	return wl
}

// DefaultWhitelist contains the post fields available for ranking.
func DefaultWhitelist() Whitelist {
	return NewWhitelist("createdAt", "commentsCount", "sharedCount")
}

func (wl Whitelist) Contains(name string) bool {
	_, ok := wl[name]
	return ok
}

// Names returns the whitelisted names in lexical order.
func (wl Whitelist) Names() []string {
	names := make([]string, 0, len(wl))
	for name := range wl {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that node only uses whitelisted variables, numeric
// literals, the four arithmetic operators and calls with the right arity.
//
// A literal that is not a number makes the result false without an error,
// every other violation is reported as an error. The walk is depth first and
// stops at the first violation.
func Validate(node Node, whitelist Whitelist) (bool, error) {
	switch n := node.(type) {
	case *Literal:
		return isNumber(n.Value), nil
	case *Identifier:
		if !whitelist.Contains(n.Name) {
			return false, &InvalidVariableError{Name: n.Name}
		}
		return true, nil
	case *CallExpression:
		if err := checkFunction(n); err != nil {
			return false, err
		}
		for _, arg := range n.Arguments {
			ok, err := Validate(arg, whitelist)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case *BinaryExpression:
		if _, ok := binaryOperators[n.Operator]; !ok {
			return false, newInvalidExpressionError(n)
		}
		ok, err := Validate(n.Left, whitelist)
		if err != nil || !ok {
			return false, err
		}
		return Validate(n.Right, whitelist)
	default:
		return false, newInvalidExpressionError(node)
	}
}

func checkFunction(call *CallExpression) error {
	callee, ok := call.Callee.(*Identifier)
	if !ok {
		return &InvalidFunctionError{Name: calleeName(call.Callee), Arity: len(call.Arguments)}
	}
	arity, known := FunctionArity[callee.Name]
	if !known || arity != len(call.Arguments) {
		return &InvalidFunctionError{Name: callee.Name, Arity: len(call.Arguments)}
	}
	return nil
}

func calleeName(node Node) string {
	switch n := node.(type) {
	case *Identifier:
		return n.Name
	case *MemberExpression:
		return calleeName(n.Object) + "." + calleeName(n.Property)
	default:
		return describeNode(node)
	}
}
