package ast

import "slices"

// Inspect traverses the tree depth-first in pre-order. If f returns false
// the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}
	for _, child := range slices.Collect(n.Children()) {
		Inspect(child, f)
	}
}

// Walk calls pre before and post after visiting the children of every node.
// Returning false from pre skips the subtree (post is still called). The
// children are snapshotted before descent, so pre may rewrite the node's
// children. Either callback may be nil.
func Walk(n Node, pre func(Node) bool, post func(Node)) {
	if isNil(n) {
		return
	}
	if pre == nil || pre(n) {
		for _, child := range slices.Collect(n.Children()) {
			Walk(child, pre, post)
		}
	}
	if post != nil {
		post(n)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}
