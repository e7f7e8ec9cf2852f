package expression

import (
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want []string
	}{
		{name: "sample keeps order and duplicates", node: sampleTree(), want: []string{"a", "b", "a"}},
		{name: "identifier", node: ident("a"), want: []string{"a"}},
		{name: "literal", node: num(1), want: []string{}},
		{name: "callee is not a variable", node: call("exp", ident("b"), ident("a")), want: []string{"b", "a"}},
		{name: "unknown variables are listed too", node: bin("*", ident("x"), ident("x")), want: []string{"x", "x"}},
		{name: "unary is not scanned", node: &UnaryExpression{Operator: "-", Argument: ident("a")}, want: []string{}},
		{name: "nil", node: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVariables(tt.node); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractVariables() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniqueVariables(t *testing.T) {
	got := UniqueVariables(bin("+", sampleTree(), ident("c")))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueVariables() = %v, want %v", got, want)
	}
}
