package transcoder

import (
	"context"
	"math"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// Decoder converts wire messages into values and metadata.
type Decoder struct {
	files FileMaterializer
}

// NewDecoder creates a decoder. files may be nil, in which case File and
// FileArray messages, empty arrays included, fail to decode with
// unsupported_kind.
func NewDecoder(files FileMaterializer) *Decoder {
	return &Decoder{files: files}
}

// DecodeValue converts a message into a value. Array messages must carry
// exactly product(dims) values. File payloads are materialized into owned
// storage only after the whole message has been validated, and are
// released again if any of them fails.
func (d *Decoder) DecodeValue(ctx context.Context, msg *wire.VariableValue) (value.Value, error) {
	v, files, err := decodeValue(msg, true, nil)
	if err != nil {
		return nil, err
	}
	if err := checkFileSupport(errors.PhaseDecode, v.Kind(), d.files != nil && d.files.Local()); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return v, nil
	}
	return d.materialize(ctx, v, files)
}

// DecodeState converts a value message with its validity flag.
func (d *Decoder) DecodeState(ctx context.Context, msg *wire.VariableState) (value.State, error) {
	if msg == nil {
		return value.State{}, errors.InvalidData(errors.PhaseDecode, nil, "missing state")
	}
	v, err := d.DecodeValue(ctx, msg.Value)
	if err != nil {
		return value.State{}, err
	}
	return value.State{Value: v, Valid: msg.IsValid}, nil
}

func (d *Decoder) materialize(ctx context.Context, v value.Value, files []value.File) (value.Value, error) {
	owned := make([]value.File, 0, len(files))
	for _, f := range files {
		o, err := d.files.Materialize(ctx, f)
		if err != nil {
			for _, done := range owned {
				_ = d.files.Release(done)
			}
			return nil, err
		}
		owned = append(owned, o)
	}

	if v.Kind() == value.KindFile {
		return owned[0], nil
	}
	arr := v.(value.FileArray)
	return value.NewFileArray(owned, arr.Shape()...)
}

// decodeValue validates msg and builds the value. File payloads are
// returned separately, still pointing at engine paths.
func decodeValue(msg *wire.VariableValue, allowFiles bool, path []string) (value.Value, []value.File, error) {
	if msg == nil {
		return nil, nil, errors.InvalidData(errors.PhaseDecode, path, "missing value")
	}
	if n := countSet(msg); n != 1 {
		return nil, nil, errors.InvalidData(errors.PhaseDecode, path,
			"value message must set exactly one member")
	}

	switch {
	case msg.IntValue != nil:
		return value.Integer(*msg.IntValue), nil, nil

	case msg.DoubleValue != nil:
		return value.Real(*msg.DoubleValue), nil, nil

	case msg.BoolValue != nil:
		return value.Boolean(*msg.BoolValue), nil, nil

	case msg.StringValue != nil:
		return value.String(*msg.StringValue), nil, nil

	case msg.FileValue != nil:
		if !allowFiles {
			return nil, nil, errors.UnsupportedKind(errors.PhaseDecode, path, value.KindFile.String(),
				"file values cannot be carried in custom metadata")
		}
		f := fileFromWire(*msg.FileValue)
		return f, []value.File{f}, nil

	case msg.IntArray != nil:
		shape, err := decodeShape(msg.IntArray.Dims, len(msg.IntArray.Values), path)
		if err != nil {
			return nil, nil, err
		}
		v, err := value.NewIntegerArray(msg.IntArray.Values, shape...)
		return v, nil, err

	case msg.DoubleArray != nil:
		shape, err := decodeShape(msg.DoubleArray.Dims, len(msg.DoubleArray.Values), path)
		if err != nil {
			return nil, nil, err
		}
		v, err := value.NewRealArray(msg.DoubleArray.Values, shape...)
		return v, nil, err

	case msg.BoolArray != nil:
		shape, err := decodeShape(msg.BoolArray.Dims, len(msg.BoolArray.Values), path)
		if err != nil {
			return nil, nil, err
		}
		v, err := value.NewBooleanArray(msg.BoolArray.Values, shape...)
		return v, nil, err

	case msg.StringArray != nil:
		shape, err := decodeShape(msg.StringArray.Dims, len(msg.StringArray.Values), path)
		if err != nil {
			return nil, nil, err
		}
		v, err := value.NewStringArray(msg.StringArray.Values, shape...)
		return v, nil, err

	case msg.FileArray != nil:
		if !allowFiles {
			return nil, nil, errors.UnsupportedKind(errors.PhaseDecode, path, value.KindFileArray.String(),
				"file values cannot be carried in custom metadata")
		}
		shape, err := decodeShape(msg.FileArray.Dims, len(msg.FileArray.Values), path)
		if err != nil {
			return nil, nil, err
		}
		files := make([]value.File, len(msg.FileArray.Values))
		for i, fv := range msg.FileArray.Values {
			files[i] = fileFromWire(fv)
		}
		v, err := value.NewFileArray(files, shape...)
		if err != nil {
			return nil, nil, err
		}
		return v, files, nil
	}

	// countSet guarantees one member is set.
	return nil, nil, errors.InvalidData(errors.PhaseDecode, path, "unknown value member")
}

// decodeShape rebuilds array dimensions and checks them against the number
// of flattened values. A message without dimensions is only accepted when
// it also carries no values, and decodes as an empty one-dimensional array.
func decodeShape(dims []uint32, n int, path []string) ([]int, error) {
	if len(dims) == 0 {
		if n == 0 {
			return []int{0}, nil
		}
		return nil, errors.New(errors.PhaseDecode, errors.KindShapeMismatch).
			Path(path...).
			Detail("array message carries %d values but no dimensions", n).
			Value(n).
			Build()
	}
	shape := make([]int, len(dims))
	product := uint64(1)
	for i, d := range dims {
		shape[i] = int(d)
		switch {
		case d == 0:
			product = 0
		case product > math.MaxUint64/uint64(d):
			product = math.MaxUint64
		default:
			product *= uint64(d)
		}
	}
	if product != uint64(n) {
		return nil, errors.ShapeMismatch(errors.PhaseDecode, path, shape, n)
	}
	return shape, nil
}

func fileFromWire(fv wire.FileValue) value.File {
	return value.File{
		Path:         fv.ContentPath,
		OriginalName: fv.OriginalName,
		MimeType:     fv.MimeType,
		Encoding:     fv.Encoding,
	}
}

func countSet(msg *wire.VariableValue) int {
	n := 0
	for _, set := range []bool{
		msg.IntValue != nil,
		msg.DoubleValue != nil,
		msg.BoolValue != nil,
		msg.StringValue != nil,
		msg.FileValue != nil,
		msg.IntArray != nil,
		msg.DoubleArray != nil,
		msg.BoolArray != nil,
		msg.StringArray != nil,
		msg.FileArray != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
