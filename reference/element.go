package reference

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/transcoder"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Env is what references need from their session.
type Env struct {
	Engine  rpc.Engine
	Encoder *transcoder.Encoder
	Decoder *transcoder.Decoder
}

// addresser produces the address of one reference element, checking the
// element still exists first.
type addresser func(ctx context.Context) (wire.ReferenceAddress, error)

// element implements the operations shared by scalar references and the
// elements of reference arrays.
type element struct {
	env  Env
	info wire.ElementInfo
}

func (el *element) equation(ctx context.Context, addr wire.ReferenceAddress) (string, error) {
	eq, err := rpc.Invoke(ctx, rpc.CallReferenceGetEquation, rpc.Indexed, func(ctx context.Context) (*wire.Equation, error) {
		return el.env.Engine.ReferenceGetEquation(ctx, &addr)
	})
	if err != nil {
		return "", err
	}
	return eq.Equation, nil
}

func (el *element) setEquation(ctx context.Context, addr wire.ReferenceAddress, equation string) error {
	_, err := rpc.Invoke(ctx, rpc.CallReferenceSetEquation, rpc.Equation, func(ctx context.Context) (*wire.Empty, error) {
		return el.env.Engine.ReferenceSetEquation(ctx, &wire.SetEquationRequest{Address: addr, Equation: equation})
	})
	if err != nil {
		return err
	}
	Logger().Debug("equation set",
		zap.String("reference", el.info.Name),
		zap.String("element", addrName(el.info.Name, addr)),
		zap.String("equation", equation))
	return nil
}

func (el *element) target(ctx context.Context, addr wire.ReferenceAddress) (Target, error) {
	eq, err := el.equation(ctx, addr)
	if err != nil {
		return Target{}, err
	}
	return resolve(ctx, el.env.Engine, el.info, eq)
}

func (el *element) state(ctx context.Context, addr wire.ReferenceAddress) (value.State, error) {
	st, err := rpc.Invoke(ctx, rpc.CallReferenceGetValue, rpc.Indexed, func(ctx context.Context) (*wire.VariableState, error) {
		return el.env.Engine.ReferenceGetValue(ctx, &addr)
	})
	if err != nil {
		return value.State{}, err
	}
	return el.env.Decoder.DecodeState(ctx, st)
}

// setState writes v through to the datapin the equation names. The
// target must be direct and writable, and v must match its kind; all of
// this is checked before any write request is made.
func (el *element) setState(ctx context.Context, addr wire.ReferenceAddress, v value.Value) error {
	path := []string{addrName(el.info.Name, addr)}

	t, err := el.target(ctx, addr)
	if err != nil {
		return err
	}
	if !t.Direct {
		return errors.NotDirectReference(path, t.Equation)
	}
	if !t.Writable() {
		return errors.New(errors.PhaseReference, errors.KindInvalidArgument).
			Path(path...).
			Detail("target %s is not writable (input %t, linked %t)", t.Element.Name, t.Element.IsInput, t.Element.IsLinked).
			Build()
	}
	kind, err := transcoder.KindOf(t.Element.Type)
	if err != nil {
		return err
	}
	if err := value.CheckValueKind(kind, v); err != nil {
		return err
	}

	msg, scope, err := el.env.Encoder.EncodeValue(ctx, v)
	if err != nil {
		return err
	}
	defer scope.Close()

	_, err = rpc.Invoke(ctx, rpc.CallReferenceSetValue, rpc.Indexed, func(ctx context.Context) (*wire.Empty, error) {
		return el.env.Engine.ReferenceSetValue(ctx, &wire.SetReferenceValueRequest{Address: addr, Value: msg})
	})
	if err != nil {
		return err
	}
	Logger().Debug("wrote through reference",
		zap.String("element", path[0]),
		zap.String("target", t.Element.Name))
	return nil
}

func (el *element) properties(ctx context.Context, owner addresser) ([]*Property, error) {
	addr, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	names, err := rpc.Invoke(ctx, rpc.CallPropertyNames, rpc.Indexed, func(ctx context.Context) (*wire.PropertyNames, error) {
		return el.env.Engine.ReferencePropertyNames(ctx, &addr)
	})
	if err != nil {
		return nil, err
	}
	props := make([]*Property, len(names.Names))
	for i, name := range names.Names {
		props[i] = newProperty(el, owner, addr, name)
	}
	return props, nil
}

func (el *element) property(ctx context.Context, owner addresser, name string) (*Property, error) {
	addr, err := owner(ctx)
	if err != nil {
		return nil, err
	}
	p := newProperty(el, owner, addr, name)
	if _, err := p.info(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func addrName(name string, addr wire.ReferenceAddress) string {
	if addr.Index == nil {
		return name
	}
	return name + "[" + strconv.FormatUint(uint64(*addr.Index), 10) + "]"
}
