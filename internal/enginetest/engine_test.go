package enginetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

func u32(n uint32) *uint32 { return &n }

func TestEvaluate(t *testing.T) {
	e := New(t)
	e.AddDatapin(Datapin{Name: "a", Value: value.Integer(2), Input: true})
	e.AddDatapin(Datapin{Name: "b", Value: value.Real(0.5)})
	e.AddDatapin(Datapin{Name: "model.x", Value: value.String("deep")})
	ref := e.AddReference("r")

	tests := []struct {
		equation string
		want     *wire.VariableValue
		valid    bool
	}{
		{"a", e.encode(value.Integer(2)), true},
		{"model.x", e.encode(value.String("deep")), true},
		{"a * 3", e.encode(value.Integer(6)), true},
		{"a + b", e.encode(value.Real(2.5)), true},
		{"a > 1", e.encode(value.Boolean(true)), true},
		{"missing + 1", nil, false},
		{"", nil, false},
	}
	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.equation, func(t *testing.T) {
			_, err := e.ReferenceSetEquation(ctx, &wire.SetEquationRequest{
				Address:  wire.ReferenceAddress{Target: ref},
				Equation: tt.equation,
			})
			require.NoError(t, err)

			st, err := e.ReferenceGetValue(ctx, &wire.ReferenceAddress{Target: ref})
			require.NoError(t, err)
			require.Equal(t, tt.valid, st.IsValid)
			if tt.valid {
				require.Equal(t, tt.want, st.Value)
			}
		})
	}
}

func TestSetEquation_RejectsBadSyntax(t *testing.T) {
	e := New(t)
	ref := e.AddReference("r")
	_, err := e.ReferenceSetEquation(context.Background(), &wire.SetEquationRequest{
		Address:  wire.ReferenceAddress{Target: ref},
		Equation: "a +",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestReferenceArray_Resize(t *testing.T) {
	e := New(t)
	arr := e.AddReferenceArray("refs", 3, Property{Name: "weight", Value: value.Real(1), Input: true})
	ctx := context.Background()

	_, err := e.ReferenceSetEquation(ctx, &wire.SetEquationRequest{
		Address:  wire.ReferenceAddress{Target: arr, Index: u32(2)},
		Equation: "x",
	})
	require.NoError(t, err)

	_, err = e.ReferenceArraySetLength(ctx, &wire.SetLengthRequest{Target: arr, Length: 2})
	require.NoError(t, err)
	_, err = e.ReferenceArraySetLength(ctx, &wire.SetLengthRequest{Target: arr, Length: 4})
	require.NoError(t, err)

	require.Equal(t, "", e.Equation("refs", 2))
	_, err = e.ReferenceGetEquation(ctx, &wire.ReferenceAddress{Target: arr, Index: u32(4)})
	require.Equal(t, codes.OutOfRange, status.Code(err))

	names, err := e.ReferencePropertyNames(ctx, &wire.ReferenceAddress{Target: arr, Index: u32(3)})
	require.NoError(t, err)
	require.Equal(t, []string{"weight"}, names.Names)
}

func TestFailNextAndDelete(t *testing.T) {
	e := New(t)
	id := e.AddDatapin(Datapin{Name: "a", Value: value.Integer(1)})
	ctx := context.Background()

	e.FailNext("DatapinGetValue", status.Error(codes.Unavailable, "down"))
	_, err := e.DatapinGetValue(ctx, &id)
	require.Equal(t, codes.Unavailable, status.Code(err))

	_, err = e.DatapinGetValue(ctx, &id)
	require.NoError(t, err)
	require.Equal(t, 2, e.Calls("DatapinGetValue"))

	e.Delete("a")
	_, err = e.DatapinGetValue(ctx, &id)
	require.Equal(t, codes.NotFound, status.Code(err))
}
