package reference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/internal/enginetest"
	"github.com/wippyai/datapin/value"
)

var props = []enginetest.Property{
	{Name: "weight", Value: value.Real(1), Input: true},
	{Name: "label", Value: value.String("none")},
}

func TestProperties_Scalar(t *testing.T) {
	fake, env := setup(t)
	fake.AddReference("r", props...)
	r := openReference(t, env, "r")
	ctx := context.Background()

	all, err := r.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "weight", all[0].Name())
	require.Equal(t, "label", all[1].Name())
	_, indexed := all[0].Index()
	require.False(t, indexed)

	w, err := r.Property(ctx, "weight")
	require.NoError(t, err)
	kind, err := w.ValueKind(ctx)
	require.NoError(t, err)
	require.Equal(t, value.KindReal, kind)
	input, err := w.IsInput(ctx)
	require.NoError(t, err)
	require.True(t, input)

	require.NoError(t, w.SetValue(ctx, value.Real(0.25)))
	v, err := w.Value(ctx)
	require.NoError(t, err)
	require.Equal(t, value.Real(0.25), v)

	require.ErrorIs(t, w.SetValue(ctx, value.Integer(1)), errors.ErrTypeMismatch)

	label, err := r.Property(ctx, "label")
	require.NoError(t, err)
	require.ErrorIs(t, label.SetValue(ctx, value.String("x")), errors.ErrInvalidArgument)

	_, err = r.Property(ctx, "missing")
	require.ErrorIs(t, err, errors.ErrInvalidInstance)
}

func TestProperties_Metadata(t *testing.T) {
	fake, env := setup(t)
	fake.AddReference("r", props...)
	r := openReference(t, env, "r")
	ctx := context.Background()

	w, err := r.Property(ctx, "weight")
	require.NoError(t, err)

	upper := 10.0
	require.NoError(t, w.SetMetadata(ctx, value.RealMetadata{
		NumericMetadata: value.NumericMetadata{Units: "kg"},
		UpperBound:      &upper,
	}))

	md, err := w.Metadata(ctx)
	require.NoError(t, err)
	rm, err := value.MetadataAs[value.RealMetadata](md)
	require.NoError(t, err)
	require.Equal(t, "kg", rm.Units)
	require.Equal(t, 10.0, *rm.UpperBound)
	require.Nil(t, rm.LowerBound)

	err = w.SetMetadata(ctx, value.BooleanMetadata{})
	require.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestProperties_ArrayElementRechecksIndex(t *testing.T) {
	fake, env := setup(t)
	fake.AddReferenceArray("refs", 3, props...)
	a := openArray(t, env, "refs")
	ctx := context.Background()

	w, err := a.Property(ctx, 2, "weight")
	require.NoError(t, err)
	i, indexed := w.Index()
	require.True(t, indexed)
	require.Equal(t, 2, i)
	require.NoError(t, w.SetValue(ctx, value.Real(3)))

	other, err := a.Property(ctx, 1, "weight")
	require.NoError(t, err)
	v, err := other.Value(ctx)
	require.NoError(t, err)
	require.Equal(t, value.Real(1), v)

	require.NoError(t, a.SetLength(ctx, 2))
	_, err = w.Value(ctx)
	require.ErrorIs(t, err, errors.ErrIndexOutOfRange)
	require.ErrorIs(t, w.SetValue(ctx, value.Real(1)), errors.ErrIndexOutOfRange)

	_, err = a.Property(ctx, 5, "weight")
	require.ErrorIs(t, err, errors.ErrIndexOutOfRange)
}
