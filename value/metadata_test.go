package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/datapin/errors"
)

func TestMetadataAs_TypeGating(t *testing.T) {
	hi := 10.5
	var md Metadata = RealMetadata{UpperBound: &hi}

	_, err := MetadataAs[BooleanMetadata](md)
	require.ErrorIs(t, err, errors.ErrTypeMismatch)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, "Boolean", e.Expected)
	require.Equal(t, "Real", e.Actual)

	rm, err := MetadataAs[RealMetadata](md)
	require.NoError(t, err)
	require.Equal(t, 10.5, *rm.UpperBound)

	_, err = MetadataAs[RealArrayMetadata](md)
	require.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestCheckMetadataKind(t *testing.T) {
	require.NoError(t, CheckMetadataKind(KindStringArray, StringArrayMetadata{}))
	require.ErrorIs(t, CheckMetadataKind(KindString, StringArrayMetadata{}), errors.ErrTypeMismatch)
	require.ErrorIs(t, CheckMetadataKind(KindInteger, nil), errors.ErrTypeMismatch)
}

func TestMetadataFor_MatchesKind(t *testing.T) {
	for k := KindInteger; k <= KindFileArray; k++ {
		md, err := MetadataFor(k)
		require.NoError(t, err)
		require.Equal(t, k, md.Kind())
	}
	_, err := MetadataFor(KindUnknown)
	require.ErrorIs(t, err, errors.ErrUnsupportedKind)
}

func TestMetadata_BasePromoted(t *testing.T) {
	md := IntegerArrayMetadata{IntegerMetadata{
		CommonMetadata:  CommonMetadata{Description: "counts", Custom: map[string]Value{"owner": String("qa")}},
		NumericMetadata: NumericMetadata{Units: "1"},
	}}
	require.Equal(t, "counts", md.Base().Description)
	require.Equal(t, String("qa"), md.Base().Custom["owner"])
	require.Equal(t, KindIntegerArray, md.Kind())
}
