// Package ctxutil carries request-scoped values through context.Context.
//
// Every API call gets a trace id, generated on demand:
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//
// Screen controllers tag their calls with the screen name so log lines can be
// attributed:
//
//	ctx = ctxutil.SetScreen(ctx, "TaskList")
package ctxutil
