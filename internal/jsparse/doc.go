// Package jsparse builds ast trees from JavaScript source using the
// tree-sitter JavaScript grammar.
//
// The tree-sitter syntax tree is converted node by node. Constructs outside
// the supported ES5 subset (classes, arrow functions, switch, labels,
// templates, destructuring) are kept as opaque custom nodes holding their
// source text and reported as UnsupportedSyntax, so the rest of the file
// still binds and minifies. Building requires cgo.
package jsparse
