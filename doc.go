// Package datapin is a client for the datapin graph of a remote workflow
// engine.
//
// The engine keeps a graph of named datapins: typed scalar or array
// variables, some of them references whose value is the result of an
// equation evaluated by the engine. This module converts between Go values
// and the engine's wire messages and exposes datapins and references as
// typed handles.
//
// # Packages
//
//	datapin/          Root package re-exporting the common entry points
//	├── session/      Connection to an engine, lookups, plain datapins
//	├── reference/    Reference datapins, reference arrays, properties
//	├── value/        Value and metadata model
//	├── transcoder/   Value and metadata conversion to wire messages
//	├── staging/      File staging for local engines
//	├── rpc/          gRPC transport, status interpretation, metrics
//	├── wire/         Engine message schema
//	└── errors/       Structured error types
//
// # Quick Start
//
//	s, err := datapin.Dial("localhost:50051")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	gain, err := s.Datapin(ctx, "model.gain")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := gain.SetValue(ctx, datapin.Real(0.5)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Every failure is an *errors.Error with a Kind. Match kinds with the
// sentinels re-exported here:
//
//	if errors.Is(err, datapin.ErrInvalidInstance) {
//	    // the element was deleted from the engine
//	}
package datapin
