// Package errors provides structured error types for the datapin client.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, expected/actual kind names,
// the engine call and status for transport-derived errors, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("metadata", "upper_bound").
//		Expected("Boolean").
//		Actual("Real").
//		Detail("numeric bounds on a non-numeric datapin").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "Integer", "String")
//	err := errors.IndexOutOfRange(errors.PhaseReference, path, 5, 3)
//
// Every kind has a sentinel (ErrTypeMismatch, ErrInvalidInstance, ...) that
// matches with errors.Is regardless of phase:
//
//	if errors.Is(err, dperrors.ErrInvalidInstance) {
//		// the datapin was deleted or its workflow unloaded
//	}
package errors
