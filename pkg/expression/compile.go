package expression

import (
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
)

// Placeholder is returned in place of nodes that have no operator tree
// equivalent.
const Placeholder = ""

// Aggregation operators the compiler emits.
const (
	OP_ADD      = "$add"
	OP_SUBTRACT = "$subtract"
	OP_MULTIPLY = "$multiply"
	OP_DIVIDE   = "$divide"
	OP_EXP      = "$exp"
)

var binaryOperators = map[string]string{
	"+": OP_ADD,
	"-": OP_SUBTRACT,
	"*": OP_MULTIPLY,
	"/": OP_DIVIDE,
}

// Compile lowers a validated node into an aggregation operator tree: a
// number, a "$field" reference, or a single key bson.M from operator to
// operands.
//
// Nodes without a lowering (sigmoid calls, unknown functions, node kinds
// outside the grammar) become Placeholder. Callers that cannot accept that
// should use CompileStrict.
func Compile(node Node) any {
	tree, err := compile(node)
	if err != nil {
		slog.Debug("expression compiled with placeholder", slog.String("reason", err.Error()))
	}
	return tree
}

// CompileStrict validates node against whitelist and compiles it, failing
// instead of emitting placeholders.
func CompileStrict(node Node, whitelist Whitelist) (any, error) {
	ok, err := Validate(node, whitelist)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNonNumericLiteral
	}
	return compile(node)
}

// compile always returns a complete tree; err reports the first node that
// was replaced by Placeholder.
func compile(node Node) (any, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil
	case *Identifier:
		return "$" + n.Name, nil
	case *BinaryExpression:
		op, ok := binaryOperators[n.Operator]
		if !ok {
			return Placeholder, fmt.Errorf("%w: operator %q", ErrNoLowering, n.Operator)
		}
		left, lErr := compile(n.Left)
		right, rErr := compile(n.Right)
		return bson.M{op: bson.A{left, right}}, firstError(lErr, rErr)
	case *CallExpression:
		callee, ok := n.Callee.(*Identifier)
		if !ok {
			return Placeholder, fmt.Errorf("%w: callee %s", ErrNoLowering, calleeName(n.Callee))
		}
		return compileCall(callee.Name, n.Arguments)
	default:
		return Placeholder, fmt.Errorf("%w: %s", ErrNoLowering, describeNode(node))
	}
}

func compileCall(name string, args []Node) (any, error) {
	switch {
	case name == FUNCTION_EXP && len(args) >= 1:
		arg, err := compile(args[0])
		return bson.M{OP_EXP: arg}, err
	case name == FUNCTION_EXP_DECAY && len(args) >= 3:
		// value * e^(-1 * rate * elapsed)
		value, vErr := compile(args[0])
		rate, rErr := compile(args[1])
		elapsed, eErr := compile(args[2])
		return bson.M{
			OP_MULTIPLY: bson.A{
				value,
				bson.M{
					OP_EXP: bson.M{
						OP_MULTIPLY: bson.A{float64(-1), rate, elapsed},
					},
				},
			},
		}, firstError(vErr, rErr, eErr)
	default:
		// sigmoid is accepted by Validate but has no lowering yet.
		return Placeholder, fmt.Errorf("%w: function %s", ErrNoLowering, name)
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
