package transcoder

import (
	"context"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/staging"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

var kindToType = map[value.Kind]wire.ValueType{
	value.KindInteger:      wire.TypeInteger,
	value.KindReal:         wire.TypeReal,
	value.KindBoolean:      wire.TypeBoolean,
	value.KindString:       wire.TypeString,
	value.KindFile:         wire.TypeFile,
	value.KindIntegerArray: wire.TypeIntegerArray,
	value.KindRealArray:    wire.TypeRealArray,
	value.KindBooleanArray: wire.TypeBooleanArray,
	value.KindStringArray:  wire.TypeStringArray,
	value.KindFileArray:    wire.TypeFileArray,
}

var typeToKind = func() map[wire.ValueType]value.Kind {
	m := make(map[wire.ValueType]value.Kind, len(kindToType))
	for k, t := range kindToType {
		m[t] = k
	}
	return m
}()

// KindOf maps a wire value type to a value kind.
func KindOf(t wire.ValueType) (value.Kind, error) {
	if k, ok := typeToKind[t]; ok {
		return k, nil
	}
	return value.KindUnknown, errors.UnsupportedKind(errors.PhaseDecode, nil, string(t), "unknown wire value type")
}

// TypeOf maps a value kind to its wire value type.
func TypeOf(k value.Kind) (wire.ValueType, error) {
	if t, ok := kindToType[k]; ok {
		return t, nil
	}
	return wire.TypeUnspecified, errors.UnsupportedKind(errors.PhaseEncode, nil, k.String(), "kind has no wire type")
}

// FileStager stages outgoing file payloads for one request. Local reports
// whether the engine can read this machine's files at all.
type FileStager interface {
	Local() bool
	StageForSend(ctx context.Context, files ...value.File) (*staging.Scope, error)
}

// FileMaterializer takes ownership of files returned by the engine.
type FileMaterializer interface {
	Local() bool
	Materialize(ctx context.Context, f value.File) (value.File, error)
	Release(f value.File) error
}

// checkFileSupport fails for File and FileArray kinds unless file content
// can be exchanged with the engine, whether or not any payload is present.
func checkFileSupport(phase errors.Phase, k value.Kind, local bool) error {
	if !k.IsFile() || local {
		return nil
	}
	return errors.UnsupportedKind(phase, nil, k.String(),
		"file content requires an engine on the local machine")
}
