// Package token defines the JavaScript token kinds attached to source contexts
// and used as operator tags on AST nodes.
// Invariants:
//   - Kind zero value is None (no associated token).
//   - Every assignment operator reports IsAssign; only Assign is a plain store.
//   - Keyword lookup is case-sensitive, as in JavaScript.
package token
