// Package trace records what the minifier pipeline is doing: which unit is
// being processed and which phase (parse, bind, rewrite, crunch, emit) it is in.
//
// Enable it from the command line:
//
//	jsmin diag --trace=- --trace-level=phase src/
//
// Tracers:
//
//   - Nop: tracing disabled
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events, dumped when a unit fails
//   - MultiTracer: fans out to several tracers
//
// Levels from quiet to verbose are off, error, phase, detail and debug.
// Scopes from coarse to fine are driver, pass, unit and node; a level lets
// through every scope at or above its granularity.
//
// Tracers travel with the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "bind", parentID)
//	defer span.End("")
package trace
