// Package jsonout serializes a constant expression tree as JSON text.
//
// Only array and object literals, strings, numbers, booleans, null and a
// leading unary minus are representable. Every other node clears the
// validity flag and emits nothing, and the walk continues with its siblings,
// so callers always get best-effort text plus a verdict.
package jsonout
