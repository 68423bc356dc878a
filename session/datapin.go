package session

import (
	"context"

	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Datapin is a plain datapin: a named variable of fixed kind holding its
// own value.
type Datapin struct {
	s    *Session
	info wire.ElementInfo
	kind value.Kind
}

func (d *Datapin) Name() string       { return d.info.Name }
func (d *Datapin) ID() wire.ElementID { return d.info.ID }
func (d *Datapin) Kind() value.Kind   { return d.kind }

// IsInput and IsLinked report writability as of the lookup.
func (d *Datapin) IsInput() bool  { return d.info.IsInput }
func (d *Datapin) IsLinked() bool { return d.info.IsLinked }

// Value returns the current value with the engine's validity flag.
func (d *Datapin) Value(ctx context.Context) (value.State, error) {
	st, err := rpc.Invoke(ctx, rpc.CallDatapinGetValue, rpc.Lookup, func(ctx context.Context) (*wire.VariableState, error) {
		id := d.info.ID
		return d.s.engine.DatapinGetValue(ctx, &id)
	})
	if err != nil {
		return value.State{}, err
	}
	return d.s.env.Decoder.DecodeState(ctx, st)
}

// SetValue replaces the value. v must be of the datapin's kind. Files are
// staged for the duration of the request only.
func (d *Datapin) SetValue(ctx context.Context, v value.Value) error {
	if err := value.CheckValueKind(d.kind, v); err != nil {
		return err
	}
	msg, scope, err := d.s.env.Encoder.EncodeValue(ctx, v)
	if err != nil {
		return err
	}
	defer scope.Close()

	_, err = rpc.Invoke(ctx, rpc.CallDatapinSetValue, rpc.Lookup, func(ctx context.Context) (*wire.Empty, error) {
		return d.s.engine.DatapinSetValue(ctx, &wire.SetValueRequest{Target: d.info.ID, Value: msg})
	})
	return err
}

// Metadata returns the datapin's metadata, typed for its kind.
func (d *Datapin) Metadata(ctx context.Context) (value.Metadata, error) {
	msg, err := rpc.Invoke(ctx, rpc.CallDatapinGetMetadata, rpc.Lookup, func(ctx context.Context) (*wire.VariableMetadata, error) {
		id := d.info.ID
		return d.s.engine.DatapinGetMetadata(ctx, &id)
	})
	if err != nil {
		return nil, err
	}
	return d.s.env.Decoder.DecodeMetadata(ctx, d.kind, msg)
}

// SetMetadata replaces the datapin's metadata. md must be for the
// datapin's kind.
func (d *Datapin) SetMetadata(ctx context.Context, md value.Metadata) error {
	if err := value.CheckMetadataKind(d.kind, md); err != nil {
		return err
	}
	msg, err := d.s.env.Encoder.EncodeMetadata(md)
	if err != nil {
		return err
	}
	_, err = rpc.Invoke(ctx, rpc.CallDatapinSetMetadata, rpc.Lookup, func(ctx context.Context) (*wire.Empty, error) {
		return d.s.engine.DatapinSetMetadata(ctx, &wire.SetMetadataRequest{Target: d.info.ID, Metadata: msg})
	})
	return err
}
