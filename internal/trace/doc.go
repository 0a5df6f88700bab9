// Package trace provides operational tracing for the bajzel pipeline.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	bajzel gen --trace=- --trace-level=phase message.fuzl
//
// # Architecture
//
//   - nopTracer: zero-overhead tracer used when tracing is off
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on demand
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: heartbeats only
//   - LevelPhase: driver and pass boundaries (lex, parse, eval, generate)
//   - LevelDetail: per-sample events of batch generation
//   - LevelDebug: everything, including per-statement evaluation
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
