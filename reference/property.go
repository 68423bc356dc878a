package reference

import (
	"context"
	"strconv"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/transcoder"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Property is a named sub-value of a scalar reference or of one element of
// a reference array. Properties of array elements check the element index
// against the current length before every request.
type Property struct {
	el    *element
	owner addresser
	name  string
	index int
}

func newProperty(el *element, owner addresser, addr wire.ReferenceAddress, name string) *Property {
	p := &Property{el: el, owner: owner, name: name, index: -1}
	if addr.Index != nil {
		p.index = int(*addr.Index)
	}
	return p
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Index returns the owning element's index, or false for a property of a
// scalar reference.
func (p *Property) Index() (int, bool) {
	return p.index, p.index >= 0
}

func (p *Property) address(ctx context.Context) (wire.PropertyAddress, error) {
	owner, err := p.owner(ctx)
	if err != nil {
		return wire.PropertyAddress{}, err
	}
	return wire.PropertyAddress{Owner: owner, Name: p.name}, nil
}

func (p *Property) path() []string {
	owner := p.el.info.Name
	if p.index >= 0 {
		owner += "[" + strconv.Itoa(p.index) + "]"
	}
	return []string{owner, p.name}
}

func (p *Property) info(ctx context.Context) (*wire.PropertyInfo, error) {
	addr, err := p.address(ctx)
	if err != nil {
		return nil, err
	}
	return rpc.Invoke(ctx, rpc.CallPropertyGetInfo, rpc.Indexed, func(ctx context.Context) (*wire.PropertyInfo, error) {
		return p.el.env.Engine.ReferencePropertyGetInfo(ctx, &addr)
	})
}

// ValueKind returns the kind of value the property holds.
func (p *Property) ValueKind(ctx context.Context) (value.Kind, error) {
	info, err := p.info(ctx)
	if err != nil {
		return value.KindUnknown, err
	}
	return transcoder.KindOf(info.Type)
}

// IsInput reports whether the property can be set.
func (p *Property) IsInput(ctx context.Context) (bool, error) {
	info, err := p.info(ctx)
	if err != nil {
		return false, err
	}
	return info.IsInput, nil
}

// Value returns the property's current value.
func (p *Property) Value(ctx context.Context) (value.Value, error) {
	addr, err := p.address(ctx)
	if err != nil {
		return nil, err
	}
	st, err := rpc.Invoke(ctx, rpc.CallPropertyGetValue, rpc.Indexed, func(ctx context.Context) (*wire.VariableState, error) {
		return p.el.env.Engine.ReferencePropertyGetValue(ctx, &addr)
	})
	if err != nil {
		return nil, err
	}
	return p.el.env.Decoder.DecodeValue(ctx, st.Value)
}

// SetValue sets the property. v must match the property's kind and the
// property must be an input.
func (p *Property) SetValue(ctx context.Context, v value.Value) error {
	info, err := p.info(ctx)
	if err != nil {
		return err
	}
	if !info.IsInput {
		return errors.InvalidArgument(errors.PhaseReference, p.path(), "property is not an input")
	}
	kind, err := transcoder.KindOf(info.Type)
	if err != nil {
		return err
	}
	if err := value.CheckValueKind(kind, v); err != nil {
		return err
	}

	msg, scope, err := p.el.env.Encoder.EncodeValue(ctx, v)
	if err != nil {
		return err
	}
	defer scope.Close()

	addr, err := p.address(ctx)
	if err != nil {
		return err
	}
	_, err = rpc.Invoke(ctx, rpc.CallPropertySetValue, rpc.Indexed, func(ctx context.Context) (*wire.Empty, error) {
		return p.el.env.Engine.ReferencePropertySetValue(ctx, &wire.SetPropertyValueRequest{Address: addr, Value: msg})
	})
	return err
}

// Metadata returns the property's metadata, typed for its kind.
func (p *Property) Metadata(ctx context.Context) (value.Metadata, error) {
	kind, err := p.ValueKind(ctx)
	if err != nil {
		return nil, err
	}
	addr, err := p.address(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := rpc.Invoke(ctx, rpc.CallPropertyGetMetadata, rpc.Indexed, func(ctx context.Context) (*wire.VariableMetadata, error) {
		return p.el.env.Engine.ReferencePropertyGetMetadata(ctx, &addr)
	})
	if err != nil {
		return nil, err
	}
	return p.el.env.Decoder.DecodeMetadata(ctx, kind, msg)
}

// SetMetadata replaces the property's metadata. md must be for the
// property's kind.
func (p *Property) SetMetadata(ctx context.Context, md value.Metadata) error {
	kind, err := p.ValueKind(ctx)
	if err != nil {
		return err
	}
	if err := value.CheckMetadataKind(kind, md); err != nil {
		return err
	}
	msg, err := p.el.env.Encoder.EncodeMetadata(md)
	if err != nil {
		return err
	}
	addr, err := p.address(ctx)
	if err != nil {
		return err
	}
	_, err = rpc.Invoke(ctx, rpc.CallPropertySetMetadata, rpc.Indexed, func(ctx context.Context) (*wire.Empty, error) {
		return p.el.env.Engine.ReferencePropertySetMetadata(ctx, &wire.SetPropertyMetadataRequest{Address: addr, Metadata: msg})
	})
	return err
}
