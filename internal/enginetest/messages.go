package enginetest

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/wire"
)

func valueType(msg *wire.VariableValue) wire.ValueType {
	switch {
	case msg == nil:
		return wire.TypeUnspecified
	case msg.IntValue != nil:
		return wire.TypeInteger
	case msg.DoubleValue != nil:
		return wire.TypeReal
	case msg.BoolValue != nil:
		return wire.TypeBoolean
	case msg.StringValue != nil:
		return wire.TypeString
	case msg.FileValue != nil:
		return wire.TypeFile
	case msg.IntArray != nil:
		return wire.TypeIntegerArray
	case msg.DoubleArray != nil:
		return wire.TypeRealArray
	case msg.BoolArray != nil:
		return wire.TypeBooleanArray
	case msg.StringArray != nil:
		return wire.TypeStringArray
	case msg.FileArray != nil:
		return wire.TypeFileArray
	}
	return wire.TypeUnspecified
}

// elementType maps array types to their element type.
func elementType(t wire.ValueType) wire.ValueType {
	switch t {
	case wire.TypeIntegerArray:
		return wire.TypeInteger
	case wire.TypeRealArray:
		return wire.TypeReal
	case wire.TypeBooleanArray:
		return wire.TypeBoolean
	case wire.TypeStringArray:
		return wire.TypeString
	case wire.TypeFileArray:
		return wire.TypeFile
	}
	return t
}

func defaultMetadata(t wire.ValueType) *wire.VariableMetadata {
	switch elementType(t) {
	case wire.TypeInteger:
		return &wire.VariableMetadata{Integer: &wire.IntegerMetadata{}}
	case wire.TypeReal:
		return &wire.VariableMetadata{Real: &wire.RealMetadata{}}
	case wire.TypeBoolean:
		return &wire.VariableMetadata{Boolean: &wire.BooleanMetadata{}}
	case wire.TypeString:
		return &wire.VariableMetadata{String: &wire.StringMetadata{}}
	case wire.TypeFile:
		return &wire.VariableMetadata{File: &wire.FileMetadata{}}
	}
	return nil
}

func metadataType(md *wire.VariableMetadata) wire.ValueType {
	switch {
	case md == nil:
		return wire.TypeUnspecified
	case md.Integer != nil:
		return wire.TypeInteger
	case md.Real != nil:
		return wire.TypeReal
	case md.Boolean != nil:
		return wire.TypeBoolean
	case md.String != nil:
		return wire.TypeString
	case md.File != nil:
		return wire.TypeFile
	}
	return wire.TypeUnspecified
}

func checkMetadata(t wire.ValueType, md *wire.VariableMetadata) error {
	if got := metadataType(md); got != elementType(t) {
		return status.Errorf(codes.InvalidArgument, "metadata for %s, got %s", t, got)
	}
	return nil
}

// receive stores a value sent by a client. File content is copied into the
// engine directory while the request is in flight, as the real engine
// does; the staged source may disappear right after.
func (e *Engine) receive(msg *wire.VariableValue) (*wire.VariableValue, error) {
	switch {
	case msg.FileValue != nil:
		fv, err := e.copyIn(*msg.FileValue)
		if err != nil {
			return nil, err
		}
		return &wire.VariableValue{FileValue: &fv}, nil

	case msg.FileArray != nil:
		arr := &wire.FileArray{
			Values: make([]wire.FileValue, len(msg.FileArray.Values)),
			Dims:   append([]uint32(nil), msg.FileArray.Dims...),
		}
		for i, src := range msg.FileArray.Values {
			fv, err := e.copyIn(src)
			if err != nil {
				return nil, err
			}
			arr.Values[i] = fv
		}
		return &wire.VariableValue{FileArray: arr}, nil
	}
	return msg, nil
}

func (e *Engine) copyIn(fv wire.FileValue) (wire.FileValue, error) {
	e.seen = append(e.seen, fv.ContentPath)

	src, err := os.Open(fv.ContentPath)
	if err != nil {
		return wire.FileValue{}, status.Errorf(codes.InvalidArgument, "read %s: %v", fv.ContentPath, err)
	}
	defer src.Close()

	dst := filepath.Join(e.dir, uuid.NewString())
	out, err := os.Create(dst)
	if err != nil {
		return wire.FileValue{}, status.Errorf(codes.Internal, "store file: %v", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return wire.FileValue{}, status.Errorf(codes.Internal, "store file: %v", err)
	}
	if err := out.Close(); err != nil {
		return wire.FileValue{}, status.Errorf(codes.Internal, "store file: %v", err)
	}

	stored := fv
	stored.ContentPath = dst
	return stored, nil
}
