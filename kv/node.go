package kv

import (
	"golang.org/x/text/cases"
)

// Kind distinguishes string leaves from objects.
type Kind uint8

const (
	KindString Kind = iota
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

var fold = cases.Fold()

func foldKey(key string) string {
	return fold.String(key)
}

// Node is the tree shared by the text and binary decoders. A node is either a
// string value or an ordered set of named children. Children are looked up
// case-insensitively and a repeated key replaces the earlier value in place.
type Node struct {
	Key   string
	kind  Kind
	value string

	children []*Node
	index    map[string]int
}

// NewString returns a string leaf.
func NewString(key, value string) *Node {
	return &Node{Key: key, kind: KindString, value: value}
}

// NewObject returns an empty object node.
func NewObject(key string) *Node {
	return &Node{Key: key, kind: KindObject}
}

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsObject() bool { return n != nil && n.kind == KindObject }

func (n *Node) IsString() bool { return n != nil && n.kind == KindString }

// Value returns the string payload. Objects return "".
func (n *Node) Value() string {
	if n == nil || n.kind != KindString {
		return ""
	}
	return n.value
}

// Len returns the number of children of an object.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Children returns the children in first-seen key order. The slice is a copy;
// the nodes are shared.
func (n *Node) Children() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Get returns the child named key, ignoring case.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.index == nil {
		return nil, false
	}
	i, ok := n.index[foldKey(key)]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// String returns the value of the string child named key, or "" when the
// child is missing or is an object.
func (n *Node) String(key string) string {
	child, ok := n.Get(key)
	if !ok {
		return ""
	}
	return child.Value()
}

// Object returns the object child named key.
func (n *Node) Object(key string) (*Node, bool) {
	child, ok := n.Get(key)
	if !ok || !child.IsObject() {
		return nil, false
	}
	return child, true
}

// Set adds child under its own key. An existing child with the same key
// (ignoring case) is replaced and keeps its position.
func (n *Node) Set(child *Node) {
	if n.kind != KindObject {
		panic("kv: Set on a string node")
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	k := foldKey(child.Key)
	if i, ok := n.index[k]; ok {
		n.children[i] = child
		return
	}
	n.index[k] = len(n.children)
	n.children = append(n.children, child)
}

// Path walks nested objects by key and returns the final node.
func (n *Node) Path(keys ...string) (*Node, bool) {
	cur := n
	for _, key := range keys {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Key: n.Key, kind: n.kind, value: n.value}
	for _, c := range n.children {
		out.Set(c.Clone())
	}
	return out
}

// Equal reports whether two trees have the same keys, kinds, values and
// child order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Key != o.Key || n.kind != o.kind || n.value != o.value || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}
