// Package enginetest provides an in-memory engine for tests.
//
// The engine keeps datapins, scalar references and reference arrays in
// maps, evaluates equations with the HCL expression language and answers
// with gRPC status errors the way the real engine does. File values are
// copied into the engine's own directory during the set call, so a test
// can check that staged files existed for exactly the duration of the
// request.
package enginetest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/transcoder"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Datapin describes a plain datapin to add.
type Datapin struct {
	Name   string
	Value  value.Value
	Input  bool
	Linked bool
}

// Property describes a property present on every element of a reference.
type Property struct {
	Name  string
	Value value.Value
	Input bool
}

// Engine implements rpc.Engine in memory.
type Engine struct {
	tb  testing.TB
	dir string

	mu       sync.Mutex
	byID     map[string]*element
	byName   map[string]*element
	failures map[string][]error
	seen     []string
	calls    map[string]int
}

var _ rpc.Engine = (*Engine)(nil)

type element struct {
	info     wire.ElementInfo
	value    *wire.VariableValue
	metadata *wire.VariableMetadata

	// references only
	slots []*slot
	props []Property
}

type slot struct {
	equation string
	props    []*property
}

type property struct {
	name     string
	typ      wire.ValueType
	input    bool
	value    *wire.VariableValue
	metadata *wire.VariableMetadata
}

// New creates an empty engine whose file store lives under tb.TempDir.
func New(tb testing.TB) *Engine {
	tb.Helper()
	return &Engine{
		tb:       tb,
		dir:      tb.TempDir(),
		byID:     make(map[string]*element),
		byName:   make(map[string]*element),
		failures: make(map[string][]error),
		calls:    make(map[string]int),
	}
}

// Dir returns the directory holding files the engine has received.
func (e *Engine) Dir() string { return e.dir }

// AddDatapin adds a plain datapin and returns its id.
func (e *Engine) AddDatapin(d Datapin) wire.ElementID {
	e.tb.Helper()
	typ, err := transcoder.TypeOf(d.Value.Kind())
	if err != nil {
		e.tb.Fatalf("enginetest: %v", err)
	}
	msg := e.encode(d.Value)

	e.mu.Lock()
	defer e.mu.Unlock()
	el := e.insert(d.Name, typ, wire.NotReference)
	el.info.IsInput = d.Input
	el.info.IsLinked = d.Linked
	el.value = msg
	return el.info.ID
}

// AddReference adds a scalar reference with an empty equation.
func (e *Engine) AddReference(name string, props ...Property) wire.ElementID {
	e.tb.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	el := e.insert(name, wire.TypeUnspecified, wire.ScalarReference)
	el.props = props
	el.slots = []*slot{e.newSlot(props)}
	return el.info.ID
}

// AddReferenceArray adds a reference array of the given length.
func (e *Engine) AddReferenceArray(name string, length int, props ...Property) wire.ElementID {
	e.tb.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	el := e.insert(name, wire.TypeUnspecified, wire.ArrayReference)
	el.props = props
	for i := 0; i < length; i++ {
		el.slots = append(el.slots, e.newSlot(props))
	}
	return el.info.ID
}

// Delete removes an element. Later calls addressing it fail with NotFound.
func (e *Engine) Delete(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if el, ok := e.byName[name]; ok {
		delete(e.byName, name)
		delete(e.byID, el.info.ID.ID)
	}
}

// FailNext makes the next call named call return err.
func (e *Engine) FailNext(call string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[call] = append(e.failures[call], err)
}

// Calls returns how many times call reached the engine.
func (e *Engine) Calls(call string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[call]
}

// SeenFiles returns every content path the engine has read from a request.
func (e *Engine) SeenFiles() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.seen...)
}

// Value returns the stored value of a datapin. Files point into the
// engine directory.
func (e *Engine) Value(name string) value.Value {
	e.tb.Helper()
	e.mu.Lock()
	el := e.byName[name]
	e.mu.Unlock()
	if el == nil {
		e.tb.Fatalf("enginetest: no element %q", name)
		return nil
	}
	switch {
	case el.value.FileValue != nil:
		return fileFromValue(*el.value.FileValue)
	case el.value.FileArray != nil:
		files := make([]value.File, len(el.value.FileArray.Values))
		for i, fv := range el.value.FileArray.Values {
			files[i] = fileFromValue(fv)
		}
		dims := make([]int, len(el.value.FileArray.Dims))
		for i, d := range el.value.FileArray.Dims {
			dims[i] = int(d)
		}
		arr, err := value.NewFileArray(files, dims...)
		if err != nil {
			e.tb.Fatalf("enginetest: decode %q: %v", name, err)
		}
		return arr
	}
	v, err := transcoder.NewDecoder(nil).DecodeValue(context.Background(), el.value)
	if err != nil {
		e.tb.Fatalf("enginetest: decode %q: %v", name, err)
	}
	return v
}

// Equation returns the stored equation of a reference element.
func (e *Engine) Equation(name string, index int) string {
	e.tb.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	el := e.byName[name]
	if el == nil || index < 0 || index >= len(el.slots) {
		e.tb.Fatalf("enginetest: no reference element %q[%d]", name, index)
		return ""
	}
	return el.slots[index].equation
}

// encode builds the stored form of v. Files are taken to be already in
// place on the engine side.
func (e *Engine) encode(v value.Value) *wire.VariableValue {
	switch f := v.(type) {
	case value.File:
		fv := fileValue(f)
		return &wire.VariableValue{FileValue: &fv}
	case value.FileArray:
		arr := &wire.FileArray{}
		for _, d := range f.Shape() {
			arr.Dims = append(arr.Dims, uint32(d))
		}
		for _, x := range f.Flatten() {
			arr.Values = append(arr.Values, fileValue(x))
		}
		return &wire.VariableValue{FileArray: arr}
	}
	msg, _, err := transcoder.NewEncoder(nil).EncodeValue(context.Background(), v)
	if err != nil {
		e.tb.Fatalf("enginetest: encode %v: %v", v, err)
	}
	return msg
}

func (e *Engine) insert(name string, typ wire.ValueType, form wire.ReferenceForm) *element {
	if _, ok := e.byName[name]; ok {
		e.tb.Fatalf("enginetest: duplicate element %q", name)
	}
	el := &element{info: wire.ElementInfo{
		ID:        wire.ElementID{ID: uuid.NewString()},
		Name:      name,
		Type:      typ,
		Reference: form,
	}}
	if form == wire.NotReference {
		el.metadata = defaultMetadata(typ)
	}
	e.byID[el.info.ID.ID] = el
	e.byName[name] = el
	return el
}

func (e *Engine) newSlot(props []Property) *slot {
	s := &slot{}
	for _, p := range props {
		typ, err := transcoder.TypeOf(p.Value.Kind())
		if err != nil {
			e.tb.Fatalf("enginetest: property %q: %v", p.Name, err)
		}
		s.props = append(s.props, &property{
			name:     p.Name,
			typ:      typ,
			input:    p.Input,
			value:    e.encode(p.Value),
			metadata: defaultMetadata(typ),
		})
	}
	return s
}

// enter counts the call and returns an injected failure, if any. The
// caller holds e.mu.
func (e *Engine) enter(call string) error {
	e.calls[call]++
	if q := e.failures[call]; len(q) > 0 {
		e.failures[call] = q[1:]
		return q[0]
	}
	return nil
}

func (e *Engine) lookup(id wire.ElementID) (*element, error) {
	el, ok := e.byID[id.ID]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no element with id %q", id.ID)
	}
	return el, nil
}

func (e *Engine) reference(addr wire.ReferenceAddress) (*element, *slot, error) {
	el, err := e.lookup(addr.Target)
	if err != nil {
		return nil, nil, err
	}
	switch el.info.Reference {
	case wire.ScalarReference:
		if addr.Index != nil {
			return nil, nil, status.Errorf(codes.InvalidArgument, "%s is not a reference array", el.info.Name)
		}
		return el, el.slots[0], nil
	case wire.ArrayReference:
		if addr.Index == nil {
			return nil, nil, status.Errorf(codes.InvalidArgument, "%s needs an element index", el.info.Name)
		}
		if int(*addr.Index) >= len(el.slots) {
			return nil, nil, status.Errorf(codes.OutOfRange, "index %d out of range [0, %d)", *addr.Index, len(el.slots))
		}
		return el, el.slots[*addr.Index], nil
	default:
		return nil, nil, status.Errorf(codes.InvalidArgument, "%s is not a reference", el.info.Name)
	}
}

func (e *Engine) property(addr wire.PropertyAddress) (*property, error) {
	_, s, err := e.reference(addr.Owner)
	if err != nil {
		return nil, err
	}
	for _, p := range s.props {
		if p.name == addr.Name {
			return p, nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "no property %q", addr.Name)
}

func fileValue(f value.File) wire.FileValue {
	return wire.FileValue{
		ContentPath:  f.Path,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Encoding:     f.Encoding,
	}
}

func fileFromValue(fv wire.FileValue) value.File {
	return value.File{
		Path:         fv.ContentPath,
		OriginalName: fv.OriginalName,
		MimeType:     fv.MimeType,
		Encoding:     fv.Encoding,
	}
}
