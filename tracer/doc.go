// Package tracer provides the tracer-definition mechanism for distributed
// tracing: named tracer instances with per-instance configuration, a full
// trace/span lifecycle API with explicit error contracts, scoped blocks with
// guaranteed start/finish pairing, and context propagation across process
// boundaries.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" Go idiom:
//   - Tracer interface: Defines the contract for all tracing operations
//   - TracerClient struct: Concrete implementation of the Tracer interface
//   - Constructor returns *TracerClient (concrete type)
//   - FX module provides both *TracerClient and Tracer interface
//
// Three collaborator interfaces keep the core independent of any backend:
//   - Strategy stores the "current trace/span" per execution context.
//     The default binds traces to the context.Context chain.
//   - Adapter defines backend span defaults and the propagation wire format.
//   - Sender ships finished traces wherever they go.
//
// Many tracer instances coexist in one process. Each owns a Key naming its
// configuration slot in the process-wide registry and its current-trace
// binding; distinct keys never share state.
//
// # Configuration Resolution
//
// Every operation resolves its effective configuration fresh, layering
// static defaults, the stored record, and the call-site options, with the
// trace key always forced to the owning identity:
//
//	defaults <- stored record <- call options <- forced trace key
//
// Finish operations are special: whatever the call supplies, they use the
// STORED Strategy, Adapter, and Sender, so a trace always closes against the
// collaborators it was opened with.
//
// Disabling is a configuration value, not a different client: a disabled
// tracer answers every operation with ErrTracerDisabled (queries report
// "none") and touches no collaborator. The record survives disablement, so
// Configure(WithDisabled(false)) turns the same tracer back on.
//
// # Basic Usage
//
//	client, err := tracer.NewClient("api", tracer.Config{
//	    Service: "user-service",
//	    Env:     "production",
//	    Services: map[string]string{
//	        "user-service": "web",
//	        "user-db":      "db",
//	    },
//	    Sender: mySender,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, _, err := client.StartTrace(ctx, "request")
//	if err != nil {
//	    // tracing is off or a trace is already running; proceed untraced
//	}
//
//	ctx, span, err := client.StartSpan(ctx, "db.query",
//	    tracer.WithResource("SELECT users"),
//	    tracer.WithTag("user_id", 42),
//	)
//	// ... do the work ...
//	ctx, _, _ = client.FinishSpan(ctx)
//
//	ctx, _, _ = client.FinishTrace(ctx)
//
// # Scoped Blocks
//
// The scope forms pair every start with exactly one finish, annotate faults
// on the active span, and re-raise panics unchanged:
//
//	err := client.Trace(ctx, "request", func(ctx context.Context) error {
//	    return client.Span(ctx, "db.query", func(ctx context.Context) error {
//	        return loadUser(ctx)
//	    })
//	})
//
// A panic inside the block is recorded via SpanError, the trace (or span) is
// finished, and the panic continues to the caller with its original value.
//
// # Distributed Tracing
//
// Crossing a boundary is a pair of operations. On the way out:
//
//	client.InjectContext(ctx, tracer.HTTPHeadersCarrier(req.Header))
//
// Injection is best-effort and never fails the caller; with no active trace
// or a disabled tracer the headers are simply left alone. On the way in:
//
//	sc, err := client.DistributedContext(tracer.HTTPHeadersCarrier(r.Header))
//	if err == nil {
//	    ctx, _, _ = client.ContinueTrace(ctx, "request", sc)
//	}
//
// The wire format - header names, encodings, what crosses the boundary - is
// entirely the Adapter's business.
//
// # FX Integration
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Key { return "api" }),
//	    fx.Provide(newTracerConfig),
//	)
//
// # Error Handling
//
// Operations return sentinel errors, never panic: ErrTracerDisabled,
// ErrNoTraceContext, ErrNoSpanContext, ErrInvalidContext,
// ErrTraceAlreadyPresent. Match them with errors.Is. The only panic the
// package ever raises is the verbatim re-raise of a caller panic inside a
// scope block.
//
// # Thread Safety
//
// TracerClient and the registry are safe for concurrent use. The current
// trace is bound to one context chain; treat one trace as one logical
// execution context and do not share its context between goroutines that
// trace independently.
package tracer
