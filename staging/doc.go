// Package staging manages the on-disk lifetime of File payloads that cross
// the engine boundary.
//
// Sending: StageForSend copies the caller's files into a per-request scope
// directory and returns a Scope. The scope is a guard: callers defer
// Close so the copies disappear on every exit path.
//
//	scope, err := stager.StageForSend(ctx, file)
//	if err != nil {
//	    return err
//	}
//	defer scope.Close()
//	// send scope.Files() to the engine
//
// A batch is all or nothing. If any file fails to stage, the files staged
// before it are removed and no scope is returned.
//
// Receiving: Materialize copies an engine-returned file into storage the
// stager owns, tracked by handle in a Table, so the resulting value does
// not depend on the engine keeping its copy. Owned files are read-only and
// are removed by Release or Close.
//
// File content only exists for engines on the same machine. A stager
// created with Local false refuses both directions with unsupported_kind.
package staging
