// Package trace records what rtbuild resolved and ran.
//
// Events are spans (begin/end pairs) or points, tagged with a scope that
// says how fine-grained they are. The level picked on the command line
// decides which scopes are written:
//
//	rtbuild build --trace=- --trace-level=stage
//
// Levels:
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelStage: command and stage boundaries (resolve, fetch, compile, archive)
//   - LevelDetail: per-file events and resolution decisions
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "fetch", 0)
//	defer span.End("")
package trace
