package enginetest

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/wire"
)

func (e *Engine) ElementByName(_ context.Context, req *wire.ElementName) (*wire.ElementInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallElementByName); err != nil {
		return nil, err
	}
	el, ok := e.byName[req.Name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no element named %q", req.Name)
	}
	info := el.info
	return &info, nil
}

func (e *Engine) ElementInfo(_ context.Context, req *wire.ElementID) (*wire.ElementInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallElementInfo); err != nil {
		return nil, err
	}
	el, err := e.lookup(*req)
	if err != nil {
		return nil, err
	}
	info := el.info
	return &info, nil
}

func (e *Engine) DatapinGetValue(_ context.Context, req *wire.ElementID) (*wire.VariableState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallDatapinGetValue); err != nil {
		return nil, err
	}
	el, err := e.datapin(*req)
	if err != nil {
		return nil, err
	}
	return &wire.VariableState{Value: el.value, IsValid: true}, nil
}

func (e *Engine) DatapinSetValue(_ context.Context, req *wire.SetValueRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallDatapinSetValue); err != nil {
		return nil, err
	}
	el, err := e.datapin(req.Target)
	if err != nil {
		return nil, err
	}
	if err := e.write(el, req.Value); err != nil {
		return nil, err
	}
	return &wire.Empty{}, nil
}

func (e *Engine) DatapinGetMetadata(_ context.Context, req *wire.ElementID) (*wire.VariableMetadata, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallDatapinGetMetadata); err != nil {
		return nil, err
	}
	el, err := e.datapin(*req)
	if err != nil {
		return nil, err
	}
	return el.metadata, nil
}

func (e *Engine) DatapinSetMetadata(_ context.Context, req *wire.SetMetadataRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallDatapinSetMetadata); err != nil {
		return nil, err
	}
	el, err := e.datapin(req.Target)
	if err != nil {
		return nil, err
	}
	if err := checkMetadata(el.info.Type, req.Metadata); err != nil {
		return nil, err
	}
	el.metadata = req.Metadata
	return &wire.Empty{}, nil
}

func (e *Engine) ReferenceGetEquation(_ context.Context, req *wire.ReferenceAddress) (*wire.Equation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceGetEquation); err != nil {
		return nil, err
	}
	_, s, err := e.reference(*req)
	if err != nil {
		return nil, err
	}
	return &wire.Equation{Equation: s.equation}, nil
}

func (e *Engine) ReferenceSetEquation(_ context.Context, req *wire.SetEquationRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceSetEquation); err != nil {
		return nil, err
	}
	_, s, err := e.reference(req.Address)
	if err != nil {
		return nil, err
	}
	if err := checkEquation(req.Equation); err != nil {
		return nil, err
	}
	s.equation = req.Equation
	return &wire.Empty{}, nil
}

func (e *Engine) ReferenceGetValue(_ context.Context, req *wire.ReferenceAddress) (*wire.VariableState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceGetValue); err != nil {
		return nil, err
	}
	_, s, err := e.reference(*req)
	if err != nil {
		return nil, err
	}
	return e.evaluate(s.equation), nil
}

func (e *Engine) ReferenceSetValue(_ context.Context, req *wire.SetReferenceValueRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceSetValue); err != nil {
		return nil, err
	}
	_, s, err := e.reference(req.Address)
	if err != nil {
		return nil, err
	}
	target, ok := e.target(s.equation)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "equation %q does not name a datapin", s.equation)
	}
	if err := e.write(target, req.Value); err != nil {
		return nil, err
	}
	return &wire.Empty{}, nil
}

func (e *Engine) ReferenceArrayGetLength(_ context.Context, req *wire.ElementID) (*wire.Length, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceArrayGetLength); err != nil {
		return nil, err
	}
	el, err := e.referenceArray(*req)
	if err != nil {
		return nil, err
	}
	return &wire.Length{Length: uint32(len(el.slots))}, nil
}

func (e *Engine) ReferenceArraySetLength(_ context.Context, req *wire.SetLengthRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallReferenceArraySetLength); err != nil {
		return nil, err
	}
	el, err := e.referenceArray(req.Target)
	if err != nil {
		return nil, err
	}
	n := int(req.Length)
	if n < len(el.slots) {
		el.slots = el.slots[:n:n]
	}
	for len(el.slots) < n {
		el.slots = append(el.slots, e.newSlot(el.props))
	}
	return &wire.Empty{}, nil
}

func (e *Engine) ReferencePropertyNames(_ context.Context, req *wire.ReferenceAddress) (*wire.PropertyNames, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertyNames); err != nil {
		return nil, err
	}
	_, s, err := e.reference(*req)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(s.props))
	for i, p := range s.props {
		names[i] = p.name
	}
	return &wire.PropertyNames{Names: names}, nil
}

func (e *Engine) ReferencePropertyGetInfo(_ context.Context, req *wire.PropertyAddress) (*wire.PropertyInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertyGetInfo); err != nil {
		return nil, err
	}
	p, err := e.property(*req)
	if err != nil {
		return nil, err
	}
	return &wire.PropertyInfo{Type: p.typ, IsInput: p.input}, nil
}

func (e *Engine) ReferencePropertyGetValue(_ context.Context, req *wire.PropertyAddress) (*wire.VariableState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertyGetValue); err != nil {
		return nil, err
	}
	p, err := e.property(*req)
	if err != nil {
		return nil, err
	}
	return &wire.VariableState{Value: p.value, IsValid: true}, nil
}

func (e *Engine) ReferencePropertySetValue(_ context.Context, req *wire.SetPropertyValueRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertySetValue); err != nil {
		return nil, err
	}
	p, err := e.property(req.Address)
	if err != nil {
		return nil, err
	}
	if !p.input {
		return nil, status.Errorf(codes.InvalidArgument, "property %q is not an input", p.name)
	}
	if got := valueType(req.Value); got != p.typ {
		return nil, status.Errorf(codes.InvalidArgument, "property %q holds %s, got %s", p.name, p.typ, got)
	}
	stored, err := e.receive(req.Value)
	if err != nil {
		return nil, err
	}
	p.value = stored
	return &wire.Empty{}, nil
}

func (e *Engine) ReferencePropertyGetMetadata(_ context.Context, req *wire.PropertyAddress) (*wire.VariableMetadata, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertyGetMetadata); err != nil {
		return nil, err
	}
	p, err := e.property(*req)
	if err != nil {
		return nil, err
	}
	return p.metadata, nil
}

func (e *Engine) ReferencePropertySetMetadata(_ context.Context, req *wire.SetPropertyMetadataRequest) (*wire.Empty, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enter(rpc.CallPropertySetMetadata); err != nil {
		return nil, err
	}
	p, err := e.property(req.Address)
	if err != nil {
		return nil, err
	}
	if err := checkMetadata(p.typ, req.Metadata); err != nil {
		return nil, err
	}
	p.metadata = req.Metadata
	return &wire.Empty{}, nil
}

func (e *Engine) datapin(id wire.ElementID) (*element, error) {
	el, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	if el.info.Reference != wire.NotReference {
		return nil, status.Errorf(codes.InvalidArgument, "%s is a reference", el.info.Name)
	}
	return el, nil
}

func (e *Engine) referenceArray(id wire.ElementID) (*element, error) {
	el, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	if el.info.Reference != wire.ArrayReference {
		return nil, status.Errorf(codes.InvalidArgument, "%s is not a reference array", el.info.Name)
	}
	return el, nil
}

// write stores a new value on a plain datapin.
func (e *Engine) write(el *element, msg *wire.VariableValue) error {
	if !el.info.IsInput || el.info.IsLinked {
		return status.Errorf(codes.InvalidArgument, "%s is not writable", el.info.Name)
	}
	if got := valueType(msg); got != el.info.Type {
		return status.Errorf(codes.InvalidArgument, "%s holds %s, got %s", el.info.Name, el.info.Type, got)
	}
	stored, err := e.receive(msg)
	if err != nil {
		return err
	}
	el.value = stored
	return nil
}
