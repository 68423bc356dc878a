package transcoder

import (
	"context"
	"sort"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

// EncodeMetadata converts metadata into its message. Array metadata uses
// the message of the element kind. Custom entries are encoded with the
// value codec; File and FileArray entries are rejected.
func (e *Encoder) EncodeMetadata(md value.Metadata) (*wire.VariableMetadata, error) {
	if md == nil {
		return nil, errors.InvalidData(errors.PhaseEncode, []string{"metadata"}, "missing metadata")
	}
	enc := &metadataEncoder{}
	if err := md.Accept(enc); err != nil {
		return nil, err
	}
	return enc.msg, nil
}

type metadataEncoder struct {
	msg *wire.VariableMetadata
}

func (e *metadataEncoder) VisitIntegerMetadata(m value.IntegerMetadata) error {
	base, err := encodeBase(m.CommonMetadata)
	if err != nil {
		return err
	}
	if err := checkAliases(len(m.EnumValues), len(m.EnumAliases), errors.PhaseEncode); err != nil {
		return err
	}
	e.msg = &wire.VariableMetadata{Integer: &wire.IntegerMetadata{
		Base:        base,
		Numeric:     encodeNumeric(m.NumericMetadata),
		LowerBound:  copyPtr(m.LowerBound),
		UpperBound:  copyPtr(m.UpperBound),
		EnumValues:  copySlice(m.EnumValues),
		EnumAliases: copySlice(m.EnumAliases),
	}}
	return nil
}

func (e *metadataEncoder) VisitRealMetadata(m value.RealMetadata) error {
	base, err := encodeBase(m.CommonMetadata)
	if err != nil {
		return err
	}
	if err := checkAliases(len(m.EnumValues), len(m.EnumAliases), errors.PhaseEncode); err != nil {
		return err
	}
	e.msg = &wire.VariableMetadata{Real: &wire.RealMetadata{
		Base:        base,
		Numeric:     encodeNumeric(m.NumericMetadata),
		LowerBound:  copyPtr(m.LowerBound),
		UpperBound:  copyPtr(m.UpperBound),
		EnumValues:  copySlice(m.EnumValues),
		EnumAliases: copySlice(m.EnumAliases),
	}}
	return nil
}

func (e *metadataEncoder) VisitBooleanMetadata(m value.BooleanMetadata) error {
	base, err := encodeBase(m.CommonMetadata)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableMetadata{Boolean: &wire.BooleanMetadata{Base: base}}
	return nil
}

func (e *metadataEncoder) VisitStringMetadata(m value.StringMetadata) error {
	base, err := encodeBase(m.CommonMetadata)
	if err != nil {
		return err
	}
	if err := checkAliases(len(m.EnumValues), len(m.EnumAliases), errors.PhaseEncode); err != nil {
		return err
	}
	e.msg = &wire.VariableMetadata{String: &wire.StringMetadata{
		Base:        base,
		EnumValues:  copySlice(m.EnumValues),
		EnumAliases: copySlice(m.EnumAliases),
	}}
	return nil
}

func (e *metadataEncoder) VisitFileMetadata(m value.FileMetadata) error {
	base, err := encodeBase(m.CommonMetadata)
	if err != nil {
		return err
	}
	e.msg = &wire.VariableMetadata{File: &wire.FileMetadata{Base: base}}
	return nil
}

func (e *metadataEncoder) VisitIntegerArrayMetadata(m value.IntegerArrayMetadata) error {
	return e.VisitIntegerMetadata(m.IntegerMetadata)
}

func (e *metadataEncoder) VisitRealArrayMetadata(m value.RealArrayMetadata) error {
	return e.VisitRealMetadata(m.RealMetadata)
}

func (e *metadataEncoder) VisitBooleanArrayMetadata(m value.BooleanArrayMetadata) error {
	return e.VisitBooleanMetadata(m.BooleanMetadata)
}

func (e *metadataEncoder) VisitStringArrayMetadata(m value.StringArrayMetadata) error {
	return e.VisitStringMetadata(m.StringMetadata)
}

func (e *metadataEncoder) VisitFileArrayMetadata(m value.FileArrayMetadata) error {
	return e.VisitFileMetadata(m.FileMetadata)
}

func encodeBase(c value.CommonMetadata) (wire.BaseMetadata, error) {
	base := wire.BaseMetadata{Description: c.Description}
	if len(c.Custom) == 0 {
		return base, nil
	}
	base.CustomMetadata = make(map[string]*wire.VariableValue, len(c.Custom))
	for _, key := range sortedKeys(c.Custom) {
		enc := &valueEncoder{path: []string{"metadata", "custom", key}}
		if err := value.Dispatch(c.Custom[key], enc); err != nil {
			return wire.BaseMetadata{}, err
		}
		base.CustomMetadata[key] = enc.msg
	}
	return base, nil
}

func encodeNumeric(n value.NumericMetadata) wire.NumericFormatting {
	return wire.NumericFormatting{Units: n.Units, DisplayFormat: n.DisplayFormat}
}

// DecodeMetadata converts a message into metadata for a datapin of kind k.
// A message for a different kind is a type_mismatch naming both kinds.
func (d *Decoder) DecodeMetadata(_ context.Context, k value.Kind, msg *wire.VariableMetadata) (value.Metadata, error) {
	if msg == nil {
		return nil, errors.InvalidData(errors.PhaseDecode, []string{"metadata"}, "missing metadata")
	}
	actual, err := metadataMember(msg)
	if err != nil {
		return nil, err
	}
	if actual != k.Element() {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path("metadata").
			Expected(k.String()).
			Actual(actual.String()).
			Detail("engine returned metadata for another kind").
			Build()
	}

	switch k {
	case value.KindInteger, value.KindIntegerArray:
		m, err := decodeIntegerMetadata(msg.Integer)
		if err != nil {
			return nil, err
		}
		if k.IsArray() {
			return value.IntegerArrayMetadata{IntegerMetadata: m}, nil
		}
		return m, nil

	case value.KindReal, value.KindRealArray:
		m, err := decodeRealMetadata(msg.Real)
		if err != nil {
			return nil, err
		}
		if k.IsArray() {
			return value.RealArrayMetadata{RealMetadata: m}, nil
		}
		return m, nil

	case value.KindBoolean, value.KindBooleanArray:
		base, err := decodeBase(msg.Boolean.Base)
		if err != nil {
			return nil, err
		}
		m := value.BooleanMetadata{CommonMetadata: base}
		if k.IsArray() {
			return value.BooleanArrayMetadata{BooleanMetadata: m}, nil
		}
		return m, nil

	case value.KindString, value.KindStringArray:
		base, err := decodeBase(msg.String.Base)
		if err != nil {
			return nil, err
		}
		if err := checkAliases(len(msg.String.EnumValues), len(msg.String.EnumAliases), errors.PhaseDecode); err != nil {
			return nil, err
		}
		m := value.StringMetadata{
			CommonMetadata: base,
			EnumValues:     copySlice(msg.String.EnumValues),
			EnumAliases:    copySlice(msg.String.EnumAliases),
		}
		if k.IsArray() {
			return value.StringArrayMetadata{StringMetadata: m}, nil
		}
		return m, nil

	case value.KindFile, value.KindFileArray:
		base, err := decodeBase(msg.File.Base)
		if err != nil {
			return nil, err
		}
		m := value.FileMetadata{CommonMetadata: base}
		if k.IsArray() {
			return value.FileArrayMetadata{FileMetadata: m}, nil
		}
		return m, nil

	default:
		return nil, errors.UnsupportedKind(errors.PhaseDecode, []string{"metadata"}, k.String(), "no metadata for kind")
	}
}

func decodeIntegerMetadata(w *wire.IntegerMetadata) (value.IntegerMetadata, error) {
	base, err := decodeBase(w.Base)
	if err != nil {
		return value.IntegerMetadata{}, err
	}
	if err := checkAliases(len(w.EnumValues), len(w.EnumAliases), errors.PhaseDecode); err != nil {
		return value.IntegerMetadata{}, err
	}
	return value.IntegerMetadata{
		CommonMetadata:  base,
		NumericMetadata: decodeNumeric(w.Numeric),
		LowerBound:      copyPtr(w.LowerBound),
		UpperBound:      copyPtr(w.UpperBound),
		EnumValues:      copySlice(w.EnumValues),
		EnumAliases:     copySlice(w.EnumAliases),
	}, nil
}

func decodeRealMetadata(w *wire.RealMetadata) (value.RealMetadata, error) {
	base, err := decodeBase(w.Base)
	if err != nil {
		return value.RealMetadata{}, err
	}
	if err := checkAliases(len(w.EnumValues), len(w.EnumAliases), errors.PhaseDecode); err != nil {
		return value.RealMetadata{}, err
	}
	return value.RealMetadata{
		CommonMetadata:  base,
		NumericMetadata: decodeNumeric(w.Numeric),
		LowerBound:      copyPtr(w.LowerBound),
		UpperBound:      copyPtr(w.UpperBound),
		EnumValues:      copySlice(w.EnumValues),
		EnumAliases:     copySlice(w.EnumAliases),
	}, nil
}

func decodeBase(w wire.BaseMetadata) (value.CommonMetadata, error) {
	c := value.CommonMetadata{Description: w.Description}
	if len(w.CustomMetadata) == 0 {
		return c, nil
	}
	c.Custom = make(map[string]value.Value, len(w.CustomMetadata))
	for key, msg := range w.CustomMetadata {
		v, _, err := decodeValue(msg, false, []string{"metadata", "custom", key})
		if err != nil {
			return value.CommonMetadata{}, err
		}
		c.Custom[key] = v
	}
	return c, nil
}

func decodeNumeric(w wire.NumericFormatting) value.NumericMetadata {
	return value.NumericMetadata{Units: w.Units, DisplayFormat: w.DisplayFormat}
}

// metadataMember returns the element kind of the one member set in msg.
func metadataMember(msg *wire.VariableMetadata) (value.Kind, error) {
	kind := value.KindUnknown
	n := 0
	if msg.Integer != nil {
		kind, n = value.KindInteger, n+1
	}
	if msg.Real != nil {
		kind, n = value.KindReal, n+1
	}
	if msg.Boolean != nil {
		kind, n = value.KindBoolean, n+1
	}
	if msg.String != nil {
		kind, n = value.KindString, n+1
	}
	if msg.File != nil {
		kind, n = value.KindFile, n+1
	}
	if n != 1 {
		return value.KindUnknown, errors.InvalidData(errors.PhaseDecode, []string{"metadata"},
			"metadata message must set exactly one member")
	}
	return kind, nil
}

// checkAliases enforces that enumeration aliases, when present, label
// every enumerated value.
func checkAliases(values, aliases int, phase errors.Phase) error {
	if aliases != 0 && aliases != values {
		return errors.New(phase, errors.KindInvalidData).
			Path("metadata", "enum_aliases").
			Detail("%d aliases for %d enumerated values", aliases, values).
			Build()
	}
	return nil
}

func sortedKeys(m map[string]value.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copySlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}
