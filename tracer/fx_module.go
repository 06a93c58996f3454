package tracer

import (
	"context"
	"io"
	"log"

	"go.uber.org/fx"
	"go.uber.org/multierr"
)

// FXModule provides a Uber FX module that wires a tracer client into your
// application. The module registers the client with the dependency injection
// system and sets up lifecycle management so trace collaborators are
// released cleanly on shutdown.
//
// The module provides:
// 1. *TracerClient (concrete type) for direct use
// 2. Tracer interface for dependency injection
// 3. Shutdown hooks that close closable collaborators
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Key { return "api" }),
//	    fx.Provide(func() tracer.Config {
//	        return tracer.Config{Service: "user-service", Sender: mySender}
//	    }),
//	    // other modules...
//	)
//	app.Run()
//
// Dependencies required by this module: a tracer.Key and a tracer.Config
// must be available in the dependency injection container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient, // Provides *TracerClient
		// Also provide the Tracer interface
		fx.Annotate(
			func(c *TracerClient) Tracer { return c },
			fx.As(new(Tracer)),
		),
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the
// FX lifecycle. On stop it closes the stored Sender and Strategy when they
// implement io.Closer, so queued traces are flushed before the process
// exits. Close failures are aggregated and returned together.
//
// This function is automatically invoked by the FXModule and normally
// doesn't need to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, client *TracerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: shutting down tracer...")
			stored, found := client.registry.load(client.key)
			if !found {
				log.Println("INFO: tracer has no stored configuration, skipping shutdown")
				return nil
			}

			var errs error
			if closer, ok := stored.Sender.(io.Closer); ok {
				errs = multierr.Append(errs, closer.Close())
			}
			if closer, ok := stored.Strategy.(io.Closer); ok {
				errs = multierr.Append(errs, closer.Close())
			}
			return errs
		},
	})
}
