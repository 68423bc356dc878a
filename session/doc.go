// Package session is the entry point for talking to an engine.
//
// A Session owns the transport, the file stager and the codecs, and hands
// out typed handles for the datapins it looks up:
//
//	s, err := session.Dial("localhost:50051")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	gain, err := s.Datapin(ctx, "model.gain")
//	err = gain.SetValue(ctx, value.Real(0.5))
//
//	ref, err := s.Reference(ctx, "model.input_ref")
//	st, err := ref.State(ctx)
//
// Sessions default to a local engine. A remote session (WithLocal(false))
// refuses File values with unsupported_kind, since the engine cannot read
// this machine's files. Files received from a local engine are copied into
// the session's staging directory and stay valid until Release or Close.
package session
