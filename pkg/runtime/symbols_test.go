package runtime

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestSymbolTableInsertLookup(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("x", 5)
	table.Insert("xy", 7)

	if v, ok := table.Lookup("x"); !ok || v != 5 {
		t.Fatalf("expected x=5, got %v (bound=%v)", v, ok)
	}
	if v, ok := table.Lookup("xy"); !ok || v != 7 {
		t.Fatalf("expected xy=7, got %v (bound=%v)", v, ok)
	}
	if _, ok := table.Lookup("xyz"); ok {
		t.Fatalf("expected xyz to be unbound")
	}
	table.Insert("x", 9)
	if v, _ := table.Lookup("x"); v != 9 {
		t.Fatalf("expected overwrite to 9, got %v", v)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 bindings, got %d", table.Len())
	}
}

func TestSymbolTablePrefixIsNotBound(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("alpha", 1)
	if _, ok := table.Lookup("alp"); ok {
		t.Fatalf("prefix of a bound name must not be bound")
	}
}

func TestSymbolTableDeletePrunes(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("abc", 1)
	table.Insert("ab", 2)
	before := table.nodeCount()

	table.Delete("abc")
	if _, ok := table.Lookup("abc"); ok {
		t.Fatalf("abc should be unbound after delete")
	}
	if v, ok := table.Lookup("ab"); !ok || v != 2 {
		t.Fatalf("ab must survive deleting abc, got %v (bound=%v)", v, ok)
	}
	if got := table.nodeCount(); got != before-1 {
		t.Fatalf("expected one pruned node, live nodes %d -> %d", before, got)
	}

	table.Delete("ab")
	if got := table.nodeCount(); got != 1 {
		t.Fatalf("expected only the root to remain, got %d live nodes", got)
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d", table.Len())
	}
}

func TestSymbolTableDeleteKeepsSharedPrefix(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("ab", 1)
	table.Insert("ac", 2)
	table.Delete("ab")
	if v, ok := table.Lookup("ac"); !ok || v != 2 {
		t.Fatalf("sibling binding lost: %v (bound=%v)", v, ok)
	}
	if got := table.Names(); !reflect.DeepEqual(got, []string{"ac"}) {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestSymbolTableDeleteUnboundIsNoop(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("abc", 1)
	table.Delete("zzz")
	table.Delete("ab")
	table.Delete("abcd")
	if v, ok := table.Lookup("abc"); !ok || v != 1 {
		t.Fatalf("unrelated delete touched abc: %v (bound=%v)", v, ok)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 binding, got %d", table.Len())
	}
}

func TestSymbolTableReusesFreedNodes(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("abc", 1)
	table.Delete("abc")
	arena := len(table.nodes)
	table.Insert("xyz", 2)
	if len(table.nodes) != arena {
		t.Fatalf("expected freed nodes to be reused, arena grew %d -> %d", arena, len(table.nodes))
	}
}

func TestSymbolTableNamesLexicographic(t *testing.T) {
	table := NewSymbolTable()
	for _, name := range []string{"delta", "a", "charlie", "ab", "bravo", "b"} {
		table.Insert(name, 0)
	}
	want := []string{"a", "ab", "b", "bravo", "charlie", "delta"}
	names := table.Names()
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	names[0] = "mutated"
	if table.Names()[0] != "a" {
		t.Fatalf("Names must return a snapshot")
	}
}

func TestSymbolTableUnicodeNames(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("счёт", 3)
	table.Insert("сч", 4)
	if v, ok := table.Lookup("счёт"); !ok || v != 3 {
		t.Fatalf("expected 3, got %v (bound=%v)", v, ok)
	}
	table.Delete("счёт")
	if v, ok := table.Lookup("сч"); !ok || v != 4 {
		t.Fatalf("expected 4, got %v (bound=%v)", v, ok)
	}
}

// Random inserts and deletes checked against a map model.
func TestSymbolTableRoundTripAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abc")
	randomName := func() string {
		n := 1 + rng.Intn(4)
		out := make([]rune, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(out)
	}

	table := NewSymbolTable()
	model := make(map[string]Value)
	for step := 0; step < 2000; step++ {
		name := randomName()
		if rng.Intn(3) == 0 {
			table.Delete(name)
			delete(model, name)
		} else {
			v := Value(rng.Uint32())
			table.Insert(name, v)
			model[name] = v
		}
		probe := randomName()
		got, ok := table.Lookup(probe)
		want, wantOK := model[probe]
		if ok != wantOK || got != want {
			t.Fatalf("step %d: lookup(%q) = %v,%v want %v,%v", step, probe, got, ok, want, wantOK)
		}
	}
	if table.Len() != len(model) {
		t.Fatalf("expected %d bindings, got %d", len(model), table.Len())
	}
	for _, name := range table.Names() {
		if _, ok := model[name]; !ok {
			t.Fatalf("enumerated %q which the model does not hold", name)
		}
	}
}

func TestErrorKindMatching(t *testing.T) {
	err := Errorf(KindDivisionByZero, "div by zero: %d", 7)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected errors.Is to match the kind sentinel")
	}
	if errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("kinds must not cross-match")
	}
	if err.Error() != "division by zero: div by zero: 7" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
