package ast

import (
	"iter"
	"slices"
	"strings"

	"jsmin/internal/source"
)

// NodeList is an ordered node sequence (call arguments, array elements,
// object properties, comma expressions). It never holds another NodeList.
type NodeList struct {
	exprBase
	list []Node
}

func NewNodeList(ctx *source.Context) *NodeList {
	return &NodeList{exprBase: exprBase{nodeBase{ctx: ctx}}}
}

// widen grows the owner context to cover ctx.
func (b *nodeBase) widen(ctx *source.Context) {
	if ctx == nil {
		return
	}
	if b.ctx == nil {
		b.ctx = ctx.Clone()
		return
	}
	b.ctx.UpdateWith(ctx)
}

func (n *NodeList) Accept(v Visitor) { v.VisitNodeList(n) }

func (n *NodeList) Count() int { return len(n.list) }

// At returns the element at index i.
func (n *NodeList) At(i int) Node { return n.list[i] }

// Items returns the backing slice; callers must not modify it.
func (n *NodeList) Items() []Node { return n.list }

func (n *NodeList) Children() iter.Seq[Node] { return enumerate(n.list...) }

// TerminatingContext falls back to the last element's terminator.
func (n *NodeList) TerminatingContext() *source.Context {
	if n.terminator != nil {
		return n.terminator
	}
	if len(n.list) > 0 {
		return n.list[len(n.list)-1].TerminatingContext()
	}
	return nil
}

// Append adds node at the end. A NodeList argument is flattened into its
// elements, in order.
func (n *NodeList) Append(node Node) *NodeList {
	if isNil(node) {
		return n
	}
	if other, ok := node.(*NodeList); ok {
		for _, item := range slices.Clone(other.list) {
			n.Append(item)
		}
		return n
	}
	node.setParent(n)
	n.list = append(n.list, node)
	n.widen(node.Context())
	return n
}

// Insert adds node at position pos. A NodeList argument is flattened.
func (n *NodeList) Insert(pos int, node Node) *NodeList {
	if isNil(node) {
		return n
	}
	if other, ok := node.(*NodeList); ok {
		for i, item := range slices.Clone(other.list) {
			n.Insert(pos+i, item)
		}
		return n
	}
	node.setParent(n)
	n.list = append(n.list, nil)
	copy(n.list[pos+1:], n.list[pos:])
	n.list[pos] = node
	n.widen(node.Context())
	return n
}

// Set replaces the element at i; a nil node removes it and a NodeList is
// spliced in element by element.
func (n *NodeList) Set(i int, node Node) {
	detach(n, n.list[i])
	if isNil(node) {
		n.list = append(n.list[:i], n.list[i+1:]...)
		return
	}
	if other, ok := node.(*NodeList); ok {
		n.list = append(n.list[:i], n.list[i+1:]...)
		n.Insert(i, other)
		return
	}
	n.list[i] = node
	node.setParent(n)
}

// RemoveAt drops the element at i.
func (n *NodeList) RemoveAt(i int) {
	detach(n, n.list[i])
	n.list = append(n.list[:i], n.list[i+1:]...)
}

// IndexOf returns the position of node or -1.
func (n *NodeList) IndexOf(node Node) int {
	for i, item := range n.list {
		if item == node {
			return i
		}
	}
	return -1
}

func (n *NodeList) ReplaceChild(oldNode, newNode Node) bool {
	i := n.IndexOf(oldNode)
	if i < 0 {
		return false
	}
	n.Set(i, newNode)
	return true
}

// IsEquivalentTo requires equal length and pairwise equivalence in order.
func (n *NodeList) IsEquivalentTo(other Node) bool {
	o, ok := other.(*NodeList)
	if !ok || len(o.list) != len(n.list) {
		return false
	}
	for i := range n.list {
		if !n.list[i].IsEquivalentTo(o.list[i]) {
			return false
		}
	}
	return true
}

// IsConstant reports whether every element is a constant.
func (n *NodeList) IsConstant() bool {
	for _, item := range n.list {
		if !item.IsConstant() {
			return false
		}
	}
	return true
}

// SingleConstantArgument returns the text of the only element if it is a
// constant wrapper.
func (n *NodeList) SingleConstantArgument() (string, bool) {
	if len(n.list) != 1 {
		return "", false
	}
	cw, ok := n.list[0].(*ConstantWrapper)
	if !ok {
		return "", false
	}
	return cw.String(), true
}

func (n *NodeList) String() string {
	var sb strings.Builder
	for i, item := range n.list {
		if i > 0 {
			sb.WriteString(" , ")
		}
		if s, ok := item.(interface{ String() string }); ok {
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}
