package value

import (
	"github.com/wippyai/datapin/errors"
)

// Metadata describes a datapin of the matching value kind. Like Value the
// set of implementations is closed.
type Metadata interface {
	Kind() Kind
	Base() CommonMetadata
	Accept(MetadataVisitor) error
	isMetadata()
}

// MetadataVisitor has one method per metadata kind.
type MetadataVisitor interface {
	VisitIntegerMetadata(IntegerMetadata) error
	VisitRealMetadata(RealMetadata) error
	VisitBooleanMetadata(BooleanMetadata) error
	VisitStringMetadata(StringMetadata) error
	VisitFileMetadata(FileMetadata) error
	VisitIntegerArrayMetadata(IntegerArrayMetadata) error
	VisitRealArrayMetadata(RealArrayMetadata) error
	VisitBooleanArrayMetadata(BooleanArrayMetadata) error
	VisitStringArrayMetadata(StringArrayMetadata) error
	VisitFileArrayMetadata(FileArrayMetadata) error
}

// CommonMetadata applies to every kind. Custom values may be any kind
// except File and FileArray.
type CommonMetadata struct {
	Description string
	Custom      map[string]Value
}

// NumericMetadata applies to Integer and Real kinds, scalar and array.
type NumericMetadata struct {
	Units         string
	DisplayFormat string
}

type IntegerMetadata struct {
	CommonMetadata
	NumericMetadata

	// Nil bounds are absent, not zero.
	LowerBound  *int64
	UpperBound  *int64
	EnumValues  []int64
	EnumAliases []string
}

type RealMetadata struct {
	CommonMetadata
	NumericMetadata

	LowerBound  *float64
	UpperBound  *float64
	EnumValues  []float64
	EnumAliases []string
}

type BooleanMetadata struct {
	CommonMetadata
}

type StringMetadata struct {
	CommonMetadata

	EnumValues  []string
	EnumAliases []string
}

type FileMetadata struct {
	CommonMetadata
}

type (
	IntegerArrayMetadata struct{ IntegerMetadata }
	RealArrayMetadata    struct{ RealMetadata }
	BooleanArrayMetadata struct{ BooleanMetadata }
	StringArrayMetadata  struct{ StringMetadata }
	FileArrayMetadata    struct{ FileMetadata }
)

func (m CommonMetadata) Base() CommonMetadata { return m }

func (IntegerMetadata) Kind() Kind      { return KindInteger }
func (RealMetadata) Kind() Kind         { return KindReal }
func (BooleanMetadata) Kind() Kind      { return KindBoolean }
func (StringMetadata) Kind() Kind       { return KindString }
func (FileMetadata) Kind() Kind         { return KindFile }
func (IntegerArrayMetadata) Kind() Kind { return KindIntegerArray }
func (RealArrayMetadata) Kind() Kind    { return KindRealArray }
func (BooleanArrayMetadata) Kind() Kind { return KindBooleanArray }
func (StringArrayMetadata) Kind() Kind  { return KindStringArray }
func (FileArrayMetadata) Kind() Kind    { return KindFileArray }

func (m IntegerMetadata) Accept(v MetadataVisitor) error      { return v.VisitIntegerMetadata(m) }
func (m RealMetadata) Accept(v MetadataVisitor) error         { return v.VisitRealMetadata(m) }
func (m BooleanMetadata) Accept(v MetadataVisitor) error      { return v.VisitBooleanMetadata(m) }
func (m StringMetadata) Accept(v MetadataVisitor) error       { return v.VisitStringMetadata(m) }
func (m FileMetadata) Accept(v MetadataVisitor) error         { return v.VisitFileMetadata(m) }
func (m IntegerArrayMetadata) Accept(v MetadataVisitor) error { return v.VisitIntegerArrayMetadata(m) }
func (m RealArrayMetadata) Accept(v MetadataVisitor) error    { return v.VisitRealArrayMetadata(m) }
func (m BooleanArrayMetadata) Accept(v MetadataVisitor) error { return v.VisitBooleanArrayMetadata(m) }
func (m StringArrayMetadata) Accept(v MetadataVisitor) error  { return v.VisitStringArrayMetadata(m) }
func (m FileArrayMetadata) Accept(v MetadataVisitor) error    { return v.VisitFileArrayMetadata(m) }

func (IntegerMetadata) isMetadata() {}
func (RealMetadata) isMetadata()    {}
func (BooleanMetadata) isMetadata() {}
func (StringMetadata) isMetadata()  {}
func (FileMetadata) isMetadata()    {}

// MetadataFor returns empty metadata for kind k.
func MetadataFor(k Kind) (Metadata, error) {
	switch k {
	case KindInteger:
		return IntegerMetadata{}, nil
	case KindReal:
		return RealMetadata{}, nil
	case KindBoolean:
		return BooleanMetadata{}, nil
	case KindString:
		return StringMetadata{}, nil
	case KindFile:
		return FileMetadata{}, nil
	case KindIntegerArray:
		return IntegerArrayMetadata{}, nil
	case KindRealArray:
		return RealArrayMetadata{}, nil
	case KindBooleanArray:
		return BooleanArrayMetadata{}, nil
	case KindStringArray:
		return StringArrayMetadata{}, nil
	case KindFileArray:
		return FileArrayMetadata{}, nil
	default:
		return nil, errors.UnsupportedKind(errors.PhaseValidate, nil, k.String(), "no metadata for kind")
	}
}

// CheckMetadataKind returns a type_mismatch error naming both kinds when
// md does not describe a datapin of kind expected.
func CheckMetadataKind(expected Kind, md Metadata) error {
	if md == nil {
		return errors.TypeMismatch(errors.PhaseValidate, nil, expected.String(), "nil metadata")
	}
	if md.Kind() != expected {
		return errors.TypeMismatch(errors.PhaseValidate, nil, expected.String(), md.Kind().String())
	}
	return nil
}

// CheckValueKind returns a type_mismatch error naming both kinds when v is
// not of kind expected.
func CheckValueKind(expected Kind, v Value) error {
	if v == nil {
		return errors.TypeMismatch(errors.PhaseValidate, nil, expected.String(), "nil value")
	}
	if v.Kind() != expected {
		return errors.TypeMismatch(errors.PhaseValidate, nil, expected.String(), v.Kind().String())
	}
	return nil
}

// MetadataAs reads md through the metadata type T. Reading metadata of one
// kind through another kind's type is a type_mismatch, never a coercion.
func MetadataAs[T Metadata](md Metadata) (T, error) {
	if m, ok := md.(T); ok {
		return m, nil
	}
	var zero T
	expected := "metadata"
	if m, ok := any(zero).(Metadata); ok {
		expected = m.Kind().String()
	}
	actual := "nil metadata"
	if md != nil {
		actual = md.Kind().String()
	}
	return zero, errors.TypeMismatch(errors.PhaseValidate, nil, expected, actual)
}
