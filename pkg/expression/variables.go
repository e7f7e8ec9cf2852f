package expression

// ExtractVariables lists every variable referenced by node, left to right and
// in argument order. Duplicates are kept. Function names are not variables.
func ExtractVariables(node Node) []string {
	switch n := node.(type) {
	case *Identifier:
		return []string{n.Name}
	case *BinaryExpression:
		return append(ExtractVariables(n.Left), ExtractVariables(n.Right)...)
	case *CallExpression:
		vars := []string{}
		for _, arg := range n.Arguments {
			vars = append(vars, ExtractVariables(arg)...)
		}
		return vars
	default:
		return []string{}
	}
}

// UniqueVariables is ExtractVariables without repetitions, keeping the first
// occurrence of each name.
func UniqueVariables(node Node) []string {
	seen := map[string]bool{}
	unique := []string{}
	for _, name := range ExtractVariables(node) {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}
