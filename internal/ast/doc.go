// Package ast defines the JavaScript syntax tree used by every jsmin phase.
//
// Nodes are plain pointers with a parent back-reference. Every node-valued
// setter reparents atomically: the previous child is detached only if its
// Parent still points at the owner, then the new child is attached. Rewrite
// passes mutate the tree through those setters, ReplaceChild, and the list
// operations of NodeList and Block.
package ast
