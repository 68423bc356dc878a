// Package rpc carries engine calls and interprets their failures.
//
// # Transport
//
// Engine is the engine's request/response surface, one method per call.
// Client implements it over gRPC; RegisterEngine exposes any Engine as a
// gRPC service. Messages are the plain structs of package wire, encoded
// with MessagePack under the "msgpack" content subtype, so no generated
// stubs are involved.
//
// # Error interpretation
//
// Every call goes through Invoke, which maps the returned status code to
// an error kind:
//
//	Unavailable  → disconnected   (every call)
//	Internal     → internal       (every call)
//	call-site entries, e.g. NotFound → invalid_instance
//	anything else → unexpected, keeping the original code and message
//
// A call site passes its own StatusMap; Lookup, Indexed and Equation cover
// the common cases. Invoke never retries.
//
// # Metrics
//
// When SetMetrics has installed a Metrics, Invoke counts each call by
// outcome and records its duration.
package rpc
