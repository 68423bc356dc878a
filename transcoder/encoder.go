package transcoder

import (
	"context"
	"math"
	"strconv"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/staging"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Encoder converts values and metadata into wire messages.
type Encoder struct {
	files FileStager
}

// NewEncoder creates an encoder. files may be nil, in which case File and
// FileArray values, empty arrays included, fail to encode with
// unsupported_kind.
func NewEncoder(files FileStager) *Encoder {
	return &Encoder{files: files}
}

// EncodeValue converts v into a message. For File and FileArray values the
// payloads are staged first and the returned scope owns the staged copies:
// the caller must Close it once the request carrying the message has
// completed, whatever its outcome. The scope is nil for other kinds, and
// closing a nil scope is a no-op.
func (e *Encoder) EncodeValue(ctx context.Context, v value.Value) (*wire.VariableValue, *staging.Scope, error) {
	enc := &valueEncoder{allowFiles: true}
	if err := value.Dispatch(v, enc); err != nil {
		return nil, nil, err
	}
	if err := checkFileSupport(errors.PhaseEncode, v.Kind(), e.files != nil && e.files.Local()); err != nil {
		return nil, nil, err
	}
	if len(enc.files) == 0 {
		return enc.msg, nil, nil
	}

	scope, err := e.files.StageForSend(ctx, enc.files...)
	if err != nil {
		return nil, nil, err
	}
	staged := scope.Files()
	for i := range staged {
		*enc.fileSlots[i] = wire.FileValue{
			ContentPath:  staged[i].Path,
			OriginalName: staged[i].OriginalName,
			MimeType:     staged[i].MimeType,
			Encoding:     staged[i].Encoding,
		}
	}
	return enc.msg, scope, nil
}

// valueEncoder builds one message. File payloads are collected rather than
// staged so every check runs before any file is touched.
type valueEncoder struct {
	msg        *wire.VariableValue
	allowFiles bool
	path       []string

	files     []value.File
	fileSlots []*wire.FileValue
}

func (e *valueEncoder) VisitInteger(v value.Integer) error {
	x := int64(v)
	e.msg = &wire.VariableValue{IntValue: &x}
	return nil
}

func (e *valueEncoder) VisitReal(v value.Real) error {
	x := float64(v)
	e.msg = &wire.VariableValue{DoubleValue: &x}
	return nil
}

func (e *valueEncoder) VisitBoolean(v value.Boolean) error {
	x := bool(v)
	e.msg = &wire.VariableValue{BoolValue: &x}
	return nil
}

func (e *valueEncoder) VisitString(v value.String) error {
	x := string(v)
	e.msg = &wire.VariableValue{StringValue: &x}
	return nil
}

func (e *valueEncoder) VisitFile(v value.File) error {
	if err := e.checkFiles(value.KindFile); err != nil {
		return err
	}
	fv := &wire.FileValue{}
	e.files = append(e.files, v)
	e.fileSlots = append(e.fileSlots, fv)
	e.msg = &wire.VariableValue{FileValue: fv}
	return nil
}

func (e *valueEncoder) VisitIntegerArray(v value.IntegerArray) error {
	dims, err := encodeDims(v.Shape(), e.path)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableValue{IntArray: &wire.IntArray{Values: v.Flatten(), Dims: dims}}
	return nil
}

func (e *valueEncoder) VisitRealArray(v value.RealArray) error {
	dims, err := encodeDims(v.Shape(), e.path)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableValue{DoubleArray: &wire.DoubleArray{Values: v.Flatten(), Dims: dims}}
	return nil
}

func (e *valueEncoder) VisitBooleanArray(v value.BooleanArray) error {
	dims, err := encodeDims(v.Shape(), e.path)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableValue{BoolArray: &wire.BoolArray{Values: v.Flatten(), Dims: dims}}
	return nil
}

func (e *valueEncoder) VisitStringArray(v value.StringArray) error {
	dims, err := encodeDims(v.Shape(), e.path)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableValue{StringArray: &wire.StringArray{Values: v.Flatten(), Dims: dims}}
	return nil
}

func (e *valueEncoder) VisitFileArray(v value.FileArray) error {
	if err := e.checkFiles(value.KindFileArray); err != nil {
		return err
	}
	dims, err := encodeDims(v.Shape(), e.path)
	if err != nil {
		return err
	}
	arr := &wire.FileArray{Values: make([]wire.FileValue, v.Len()), Dims: dims}
	for i, f := range v.Flatten() {
		e.files = append(e.files, f)
		e.fileSlots = append(e.fileSlots, &arr.Values[i])
	}
	e.msg = &wire.VariableValue{FileArray: arr}
	return nil
}

func (e *valueEncoder) checkFiles(k value.Kind) error {
	if !e.allowFiles {
		return errors.UnsupportedKind(errors.PhaseEncode, e.path, k.String(),
			"file values cannot be carried in custom metadata")
	}
	return nil
}

func encodeDims(shape value.Shape, path []string) ([]uint32, error) {
	dims := make([]uint32, len(shape))
	for i, d := range shape {
		if d < 0 || uint64(d) > math.MaxUint32 {
			return nil, errors.InvalidData(errors.PhaseEncode, path,
				"dimension "+strconv.Itoa(i)+" out of range: "+strconv.Itoa(d))
		}
		dims[i] = uint32(d)
	}
	return dims, nil
}
