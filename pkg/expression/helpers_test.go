package expression

func num(v float64) *Literal {
	return &Literal{Value: v}
}

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func bin(op string, left Node, right Node) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

func call(name string, args ...Node) *CallExpression {
	return &CallExpression{Callee: ident(name), Arguments: args}
}

// sampleTree is a + (b / 3) - exp_decay(a, 1, 1)
func sampleTree() Node {
	return bin("-",
		bin("+", ident("a"), bin("/", ident("b"), num(3))),
		call("exp_decay", ident("a"), num(1), num(1)),
	)
}
