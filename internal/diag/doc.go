// Package diag defines the diagnostic model shared by every analysis phase.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Level – minifier severity scale, 0 (most severe) through 4.
//   - IsError – whether the diagnostic fails the build. Derived from the level
//     (below ErrorThreshold) unless a policy forces it.
//   - Severity – display severity (Info, Warning, Error) derived from the two
//     fields above.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the Location the finding points at.
//
// # Emitting diagnostics
//
// Phases never store diagnostics themselves. A source.Context builds the
// record and hands it to its source.Document, which forwards it to a
// Reporter. BagReporter aggregates into a Bag (sorting, limits),
// DedupReporter filters exact repeats, PolicyReporter applies
// warnings-as-errors and level filtering.
//
// Package diag does not perform any formatting or IO; rendering lives in
// internal/diagfmt.
package diag
