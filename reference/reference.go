package reference

import (
	"context"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Reference is a scalar reference datapin. It holds no value of its own:
// its state is whatever its equation evaluates to in the engine.
type Reference struct {
	el   element
	addr wire.ReferenceAddress
}

// New wraps a scalar reference described by info.
func New(env Env, info wire.ElementInfo) (*Reference, error) {
	if info.Reference != wire.ScalarReference {
		return nil, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(info.Name).
			Expected("scalar reference").
			Actual(formName(info.Reference)).
			Build()
	}
	return &Reference{
		el:   element{env: env, info: info},
		addr: wire.ReferenceAddress{Target: info.ID},
	}, nil
}

// Name returns the reference's full name.
func (r *Reference) Name() string { return r.el.info.Name }

// ID returns the reference's engine id.
func (r *Reference) ID() wire.ElementID { return r.el.info.ID }

func (r *Reference) address(context.Context) (wire.ReferenceAddress, error) {
	return r.addr, nil
}

// Equation returns the reference's equation text.
func (r *Reference) Equation(ctx context.Context) (string, error) {
	return r.el.equation(ctx, r.addr)
}

// SetEquation replaces the equation. Text the engine cannot parse fails
// with invalid_equation.
func (r *Reference) SetEquation(ctx context.Context, equation string) error {
	return r.el.setEquation(ctx, r.addr, equation)
}

// Target resolves the equation.
func (r *Reference) Target(ctx context.Context) (Target, error) {
	return r.el.target(ctx, r.addr)
}

// IsDirect reports whether the equation is the bare name of another
// datapin.
func (r *Reference) IsDirect(ctx context.Context) (bool, error) {
	t, err := r.Target(ctx)
	if err != nil {
		return false, err
	}
	return t.Direct, nil
}

// State returns the value the equation evaluates to.
func (r *Reference) State(ctx context.Context) (value.State, error) {
	return r.el.state(ctx, r.addr)
}

// SetState writes v to the datapin the equation names. Fails with
// not_direct_reference unless the reference is direct, and with
// invalid_argument when the target is not a writable input.
func (r *Reference) SetState(ctx context.Context, v value.Value) error {
	return r.el.setState(ctx, r.addr, v)
}

// Properties returns the reference's properties.
func (r *Reference) Properties(ctx context.Context) ([]*Property, error) {
	return r.el.properties(ctx, r.address)
}

// Property returns the named property.
func (r *Reference) Property(ctx context.Context, name string) (*Property, error) {
	return r.el.property(ctx, r.address, name)
}

func formName(f wire.ReferenceForm) string {
	switch f {
	case wire.ScalarReference:
		return "scalar reference"
	case wire.ArrayReference:
		return "reference array"
	default:
		return "datapin"
	}
}
