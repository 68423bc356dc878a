package transcoder

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

var valueComparer = cmp.Comparer(value.Equal)

func ptr[T any](v T) *T { return &v }

func TestMetadataRoundTrip(t *testing.T) {
	custom := map[string]value.Value{
		"owner":   value.String("ops"),
		"version": value.Integer(3),
		"weights": value.RealArrayOf(0.5, 0.25),
	}

	tests := []struct {
		name string
		md   value.Metadata
	}{
		{"integer bounded", value.IntegerMetadata{
			CommonMetadata:  value.CommonMetadata{Description: "count", Custom: custom},
			NumericMetadata: value.NumericMetadata{Units: "m", DisplayFormat: "%d"},
			LowerBound:      ptr(int64(-5)),
			UpperBound:      ptr(int64(10)),
		}},
		{"integer absent bounds", value.IntegerMetadata{
			LowerBound: ptr(int64(0)),
		}},
		{"integer enum", value.IntegerMetadata{
			EnumValues:  []int64{1, 2, 3},
			EnumAliases: []string{"one", "two", "three"},
		}},
		{"real bounded", value.RealMetadata{
			NumericMetadata: value.NumericMetadata{Units: "kg"},
			UpperBound:      ptr(99.5),
		}},
		{"real enum no aliases", value.RealMetadata{
			EnumValues: []float64{0.1, 0.2},
		}},
		{"boolean", value.BooleanMetadata{CommonMetadata: value.CommonMetadata{Description: "flag"}}},
		{"string enum", value.StringMetadata{
			EnumValues:  []string{"lo", "hi"},
			EnumAliases: []string{"Low", "High"},
		}},
		{"file", value.FileMetadata{CommonMetadata: value.CommonMetadata{Custom: custom}}},
		{"integer array", value.IntegerArrayMetadata{IntegerMetadata: value.IntegerMetadata{
			UpperBound: ptr(int64(7)),
		}}},
		{"real array", value.RealArrayMetadata{}},
		{"boolean array", value.BooleanArrayMetadata{}},
		{"string array", value.StringArrayMetadata{StringMetadata: value.StringMetadata{
			EnumValues: []string{"a"},
		}}},
		{"file array", value.FileArrayMetadata{FileMetadata: value.FileMetadata{
			CommonMetadata: value.CommonMetadata{Description: "attachments"},
		}}},
	}

	enc := NewEncoder(nil)
	dec := NewDecoder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := enc.EncodeMetadata(tt.md)
			require.NoError(t, err)

			got, err := dec.DecodeMetadata(context.Background(), tt.md.Kind(), msg)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.md, got, valueComparer); diff != "" {
				t.Errorf("metadata round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMetadata_AbsentBoundStaysAbsent(t *testing.T) {
	msg := &wire.VariableMetadata{Real: &wire.RealMetadata{LowerBound: ptr(1.5)}}
	md, err := NewDecoder(nil).DecodeMetadata(context.Background(), value.KindReal, msg)
	require.NoError(t, err)

	rm := md.(value.RealMetadata)
	require.NotNil(t, rm.LowerBound)
	require.Equal(t, 1.5, *rm.LowerBound)
	require.Nil(t, rm.UpperBound)
}

func TestDecodeMetadata_KindMismatch(t *testing.T) {
	tests := []struct {
		name string
		kind value.Kind
		msg  *wire.VariableMetadata
	}{
		{"real for boolean", value.KindBoolean, &wire.VariableMetadata{Real: &wire.RealMetadata{}}},
		{"integer for string array", value.KindStringArray, &wire.VariableMetadata{Integer: &wire.IntegerMetadata{}}},
		{"file for integer", value.KindInteger, &wire.VariableMetadata{File: &wire.FileMetadata{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(nil).DecodeMetadata(context.Background(), tt.kind, tt.msg)
			require.ErrorIs(t, err, errors.ErrTypeMismatch)

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			require.Equal(t, tt.kind.String(), e.Expected)
		})
	}
}

func TestDecodeMetadata_OneMember(t *testing.T) {
	dec := NewDecoder(nil)
	_, err := dec.DecodeMetadata(context.Background(), value.KindInteger, &wire.VariableMetadata{})
	require.ErrorIs(t, err, errors.ErrInvalidData)

	_, err = dec.DecodeMetadata(context.Background(), value.KindInteger, &wire.VariableMetadata{
		Integer: &wire.IntegerMetadata{},
		Real:    &wire.RealMetadata{},
	})
	require.ErrorIs(t, err, errors.ErrInvalidData)
}

func TestCustomMetadata_FilesRejected(t *testing.T) {
	for _, v := range []value.Value{
		value.File{Path: "/tmp/x"},
		value.FileArrayOf(value.File{Path: "/tmp/x"}),
	} {
		md := value.StringMetadata{CommonMetadata: value.CommonMetadata{
			Custom: map[string]value.Value{"attachment": v},
		}}
		_, err := NewEncoder(nil).EncodeMetadata(md)
		require.ErrorIs(t, err, errors.ErrUnsupportedKind)
	}

	msg := &wire.VariableMetadata{Boolean: &wire.BooleanMetadata{Base: wire.BaseMetadata{
		CustomMetadata: map[string]*wire.VariableValue{
			"attachment": {FileValue: &wire.FileValue{ContentPath: "/tmp/x"}},
		},
	}}}
	_, err := NewDecoder(nil).DecodeMetadata(context.Background(), value.KindBoolean, msg)
	require.ErrorIs(t, err, errors.ErrUnsupportedKind)
}

func TestMetadata_AliasCountChecked(t *testing.T) {
	md := value.StringMetadata{EnumValues: []string{"a", "b"}, EnumAliases: []string{"A"}}
	_, err := NewEncoder(nil).EncodeMetadata(md)
	require.ErrorIs(t, err, errors.ErrInvalidData)

	msg := &wire.VariableMetadata{Integer: &wire.IntegerMetadata{
		EnumValues:  []int64{1},
		EnumAliases: []string{"one", "uno"},
	}}
	_, err = NewDecoder(nil).DecodeMetadata(context.Background(), value.KindInteger, msg)
	require.ErrorIs(t, err, errors.ErrInvalidData)
}
