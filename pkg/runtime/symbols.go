package runtime

import "sort"

type trieNode struct {
	children map[rune]int
	terminal bool
	value    Value
}

// SymbolTable binds variable names to values. It is a prefix tree keyed rune
// by rune whose nodes live in an arena and refer to their children by index.
// Nodes pruned by Delete go onto a free list and are reused by Insert.
//
// A SymbolTable is owned by a single interpreter session and is not safe for
// concurrent use.
type SymbolTable struct {
	nodes []trieNode
	free  []int
	size  int
}

const rootNode = 0

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{nodes: []trieNode{{}}}
}

func (s *SymbolTable) alloc() int {
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		return idx
	}
	s.nodes = append(s.nodes, trieNode{})
	return len(s.nodes) - 1
}

func (s *SymbolTable) release(idx int) {
	s.nodes[idx] = trieNode{}
	s.free = append(s.free, idx)
}

// Insert binds name to value, overwriting any previous binding.
func (s *SymbolTable) Insert(name string, value Value) {
	idx := rootNode
	for _, r := range name {
		child, ok := s.nodes[idx].children[r]
		if !ok {
			child = s.alloc()
			if s.nodes[idx].children == nil {
				s.nodes[idx].children = make(map[rune]int)
			}
			s.nodes[idx].children[r] = child
		}
		idx = child
	}
	node := &s.nodes[idx]
	if !node.terminal {
		node.terminal = true
		s.size++
	}
	node.value = value
}

func (s *SymbolTable) find(name string) (int, bool) {
	idx := rootNode
	for _, r := range name {
		child, ok := s.nodes[idx].children[r]
		if !ok {
			return 0, false
		}
		idx = child
	}
	return idx, true
}

// Lookup returns the value bound to name.
func (s *SymbolTable) Lookup(name string) (Value, bool) {
	idx, ok := s.find(name)
	if !ok || !s.nodes[idx].terminal {
		return 0, false
	}
	return s.nodes[idx].value, true
}

// Delete removes the binding for name and prunes ancestors left without
// children or binding. Deleting an unbound name does nothing.
func (s *SymbolTable) Delete(name string) {
	runes := []rune(name)
	path := make([]int, 0, len(runes)+1)
	idx := rootNode
	path = append(path, idx)
	for _, r := range runes {
		child, ok := s.nodes[idx].children[r]
		if !ok {
			return
		}
		idx = child
		path = append(path, idx)
	}
	if !s.nodes[idx].terminal {
		return
	}
	s.nodes[idx].terminal = false
	s.nodes[idx].value = 0
	s.size--

	// path[i] was reached from path[i-1] through runes[i-1].
	for i := len(path) - 1; i > 0; i-- {
		node := s.nodes[path[i]]
		if node.terminal || len(node.children) > 0 {
			break
		}
		delete(s.nodes[path[i-1]].children, runes[i-1])
		s.release(path[i])
	}
}

// Len reports the number of bound names.
func (s *SymbolTable) Len() int {
	return s.size
}

// Names returns every bound name in lexicographic (trie) order. The slice is
// a snapshot and is not affected by later mutation.
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, s.size)
	var prefix []rune
	var visit func(idx int)
	visit = func(idx int) {
		node := s.nodes[idx]
		if node.terminal {
			names = append(names, string(prefix))
		}
		if len(node.children) == 0 {
			return
		}
		keys := make([]rune, 0, len(node.children))
		for r := range node.children {
			keys = append(keys, r)
		}
		sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })
		for _, r := range keys {
			prefix = append(prefix, r)
			visit(node.children[r])
			prefix = prefix[:len(prefix)-1]
		}
	}
	visit(rootNode)
	return names
}

// nodeCount reports live arena nodes including the root.
func (s *SymbolTable) nodeCount() int {
	return len(s.nodes) - len(s.free)
}
