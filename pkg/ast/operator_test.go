package ast

import "testing"

func TestOperatorFamilies(t *testing.T) {
	unary, binary := 0, 0
	for _, op := range Operators() {
		if op.IsUnary() && op.IsBinary() {
			t.Fatalf("%s belongs to both families", op)
		}
		if op.IsUnary() {
			unary++
		}
		if op.IsBinary() {
			binary++
		}
		parsed, ok := ParseOperator(op.String())
		if !ok || parsed != op {
			t.Fatalf("ParseOperator(%q) = %v, %v", op.String(), parsed, ok)
		}
	}
	if unary != 3 || binary != 9 {
		t.Fatalf("unary=%d binary=%d, want 3 and 9", unary, binary)
	}
	if OpAssign.IsUnary() || OpAssign.IsBinary() || OpAssign.Arity() != -1 {
		t.Fatalf("assignment must stay outside both families")
	}
}

func TestOperatorArity(t *testing.T) {
	cases := map[Operator]int{
		OpInput:  0,
		OpNot:    1,
		OpOutput: 1,
		OpAdd:    2,
		OpPow:    2,
		OpOr:     2,
	}
	for op, want := range cases {
		if got := op.Arity(); got != want {
			t.Fatalf("%s.Arity() = %d, want %d", op, got, want)
		}
	}
}

func TestOperatorNames(t *testing.T) {
	if OpAssign.String() != "=" || OpMult.String() != "mult" {
		t.Fatalf("unexpected canonical names %q %q", OpAssign, OpMult)
	}
	if Operator(-1).String() != "invalid" || Operator(OperatorCount).String() != "invalid" {
		t.Fatalf("out of range operators must render as invalid")
	}
	if _, ok := ParseOperator("modulo"); ok {
		t.Fatalf("ParseOperator accepted an unknown name")
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	expr := Bin(OpAdd, Call(OpNot, N("a")), Call(OpMult, N("b"), Bin(OpSub, N("c"), N("d"))))
	var names []string
	count := 0
	Walk(expr, func(node Expression) bool {
		count++
		if n, ok := node.(*Name); ok {
			names = append(names, n.Text)
		}
		return true
	})
	if count != 8 {
		t.Fatalf("visited %d nodes, want 8", count)
	}
	if len(names) != 4 || names[0] != "a" || names[3] != "d" {
		t.Fatalf("names = %v", names)
	}

	count = 0
	Walk(expr, func(Expression) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("returning false must prune children, visited %d", count)
	}
}
