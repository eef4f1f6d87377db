// Package trace records spans for the grok pipeline so slow or stuck runs
// can be diagnosed.
//
// Enable it from the command line:
//
//	grok run --trace=- --trace-level=detail main.grok
//
// Tracers: Nop (disabled), StreamTracer (text or NDJSON written as events
// happen), RingTracer (the last N events in memory) and MultiTracer (fan
// out). Levels off, error, phase, detail and debug select which scopes are
// emitted:
//
//   - ScopeDriver: one span per command or compiled file
//   - ScopePass: pipeline phases (parse, check, generate, validate, execute)
//   - ScopeModule: per function (checker bodies, VM calls)
//   - ScopeNode: finer grained events
//
// The tracer travels on the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
