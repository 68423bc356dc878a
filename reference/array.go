package reference

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Array is a one-dimensional array of references. Its length is explicit
// and unrelated to the shapes of whatever the elements reference. Elements
// are addressed by 0-based index in [0, Length); every indexed call reads
// the current length first and fails with index_out_of_range outside it.
type Array struct {
	el element
}

// NewArray wraps a reference array described by info.
func NewArray(env Env, info wire.ElementInfo) (*Array, error) {
	if info.Reference != wire.ArrayReference {
		return nil, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(info.Name).
			Expected("reference array").
			Actual(formName(info.Reference)).
			Build()
	}
	return &Array{el: element{env: env, info: info}}, nil
}

// Name returns the array's full name.
func (a *Array) Name() string { return a.el.info.Name }

// ID returns the array's engine id.
func (a *Array) ID() wire.ElementID { return a.el.info.ID }

// Length returns the number of elements.
func (a *Array) Length(ctx context.Context) (int, error) {
	n, err := rpc.Invoke(ctx, rpc.CallReferenceArrayGetLength, rpc.Lookup, func(ctx context.Context) (*wire.Length, error) {
		id := a.el.info.ID
		return a.el.env.Engine.ReferenceArrayGetLength(ctx, &id)
	})
	if err != nil {
		return 0, err
	}
	return int(n.Length), nil
}

// SetLength resizes the array. Shrinking drops trailing elements along
// with their equations and properties; growing appends elements with empty
// equations.
func (a *Array) SetLength(ctx context.Context, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return errors.InvalidArgument(errors.PhaseValidate, []string{a.el.info.Name},
			"length "+strconv.Itoa(n)+" out of range")
	}
	_, err := rpc.Invoke(ctx, rpc.CallReferenceArraySetLength, rpc.Indexed, func(ctx context.Context) (*wire.Empty, error) {
		return a.el.env.Engine.ReferenceArraySetLength(ctx, &wire.SetLengthRequest{Target: a.el.info.ID, Length: uint32(n)})
	})
	if err != nil {
		return err
	}
	Logger().Debug("reference array resized",
		zap.String("reference", a.el.info.Name),
		zap.Int("length", n))
	return nil
}

// address checks i against the current length.
func (a *Array) address(ctx context.Context, i int) (wire.ReferenceAddress, error) {
	n, err := a.Length(ctx)
	if err != nil {
		return wire.ReferenceAddress{}, err
	}
	if i < 0 || i >= n {
		return wire.ReferenceAddress{}, errors.IndexOutOfRange(errors.PhaseValidate, []string{a.el.info.Name}, i, n)
	}
	idx := uint32(i)
	return wire.ReferenceAddress{Target: a.el.info.ID, Index: &idx}, nil
}

func (a *Array) addresser(i int) addresser {
	return func(ctx context.Context) (wire.ReferenceAddress, error) {
		return a.address(ctx, i)
	}
}

// Equation returns the equation of element i.
func (a *Array) Equation(ctx context.Context, i int) (string, error) {
	addr, err := a.address(ctx, i)
	if err != nil {
		return "", err
	}
	return a.el.equation(ctx, addr)
}

// Equations returns the equations of all elements in index order.
func (a *Array) Equations(ctx context.Context) ([]string, error) {
	n, err := a.Length(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		idx := uint32(i)
		eq, err := a.el.equation(ctx, wire.ReferenceAddress{Target: a.el.info.ID, Index: &idx})
		if err != nil {
			return nil, err
		}
		out[i] = eq
	}
	return out, nil
}

// SetEquation replaces the equation of element i.
func (a *Array) SetEquation(ctx context.Context, i int, equation string) error {
	addr, err := a.address(ctx, i)
	if err != nil {
		return err
	}
	return a.el.setEquation(ctx, addr, equation)
}

// Target resolves the equation of element i.
func (a *Array) Target(ctx context.Context, i int) (Target, error) {
	addr, err := a.address(ctx, i)
	if err != nil {
		return Target{}, err
	}
	return a.el.target(ctx, addr)
}

// IsDirect reports whether element i's equation is the bare name of
// another datapin.
func (a *Array) IsDirect(ctx context.Context, i int) (bool, error) {
	t, err := a.Target(ctx, i)
	if err != nil {
		return false, err
	}
	return t.Direct, nil
}

// State returns the value element i's equation evaluates to.
func (a *Array) State(ctx context.Context, i int) (value.State, error) {
	addr, err := a.address(ctx, i)
	if err != nil {
		return value.State{}, err
	}
	return a.el.state(ctx, addr)
}

// SetState writes v through element i to the datapin its equation names.
func (a *Array) SetState(ctx context.Context, i int, v value.Value) error {
	addr, err := a.address(ctx, i)
	if err != nil {
		return err
	}
	return a.el.setState(ctx, addr, v)
}

// Properties returns the properties of element i.
func (a *Array) Properties(ctx context.Context, i int) ([]*Property, error) {
	return a.el.properties(ctx, a.addresser(i))
}

// Property returns the named property of element i.
func (a *Array) Property(ctx context.Context, i int, name string) (*Property, error) {
	return a.el.property(ctx, a.addresser(i), name)
}
