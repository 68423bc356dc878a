package rpc_test

import (
	"context"
	"math"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/internal/enginetest"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/value"
	"github.com/wippyai/datapin/wire"
)

func serve(t *testing.T, engine rpc.Engine) *rpc.Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterEngine(srv, engine)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	client, err := rpc.Dial("passthrough:///engine",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_RoundTripsMessages(t *testing.T) {
	fake := enginetest.New(t)
	fake.AddDatapin(enginetest.Datapin{Name: "gain", Value: value.Real(math.NaN()), Input: true})
	client := serve(t, fake)
	ctx := context.Background()

	info, err := client.ElementByName(ctx, &wire.ElementName{Name: "gain"})
	require.NoError(t, err)
	require.Equal(t, wire.TypeReal, info.Type)
	require.True(t, info.IsInput)

	st, err := client.DatapinGetValue(ctx, &info.ID)
	require.NoError(t, err)
	require.True(t, st.IsValid)
	require.NotNil(t, st.Value.DoubleValue)
	require.True(t, math.IsNaN(*st.Value.DoubleValue))

	inf := math.Inf(1)
	_, err = client.DatapinSetValue(ctx, &wire.SetValueRequest{
		Target: info.ID,
		Value:  &wire.VariableValue{DoubleValue: &inf},
	})
	require.NoError(t, err)
	require.Equal(t, value.Real(math.Inf(1)), fake.Value("gain"))

	lo := -1.0
	_, err = client.DatapinSetMetadata(ctx, &wire.SetMetadataRequest{
		Target:   info.ID,
		Metadata: &wire.VariableMetadata{Real: &wire.RealMetadata{LowerBound: &lo}},
	})
	require.NoError(t, err)

	md, err := client.DatapinGetMetadata(ctx, &info.ID)
	require.NoError(t, err)
	require.NotNil(t, md.Real)
	require.Equal(t, -1.0, *md.Real.LowerBound)
	require.Nil(t, md.Real.UpperBound)
}

func TestClient_ReferenceArrayCalls(t *testing.T) {
	fake := enginetest.New(t)
	fake.AddDatapin(enginetest.Datapin{Name: "x", Value: value.IntegerArrayOf(1, 2, 3, 4)})
	id := fake.AddReferenceArray("refs", 1)
	client := serve(t, fake)
	ctx := context.Background()

	_, err := client.ReferenceArraySetLength(ctx, &wire.SetLengthRequest{Target: id, Length: 3})
	require.NoError(t, err)
	n, err := client.ReferenceArrayGetLength(ctx, &id)
	require.NoError(t, err)
	require.Equal(t, uint32(3), n.Length)

	two := uint32(2)
	_, err = client.ReferenceSetEquation(ctx, &wire.SetEquationRequest{
		Address:  wire.ReferenceAddress{Target: id, Index: &two},
		Equation: "x",
	})
	require.NoError(t, err)

	st, err := client.ReferenceGetValue(ctx, &wire.ReferenceAddress{Target: id, Index: &two})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, st.Value.IntArray.Values)
	require.Equal(t, []uint32{4}, st.Value.IntArray.Dims)
}

func TestClient_StatusSurvivesTransport(t *testing.T) {
	client := serve(t, enginetest.New(t))
	ctx := context.Background()

	_, err := rpc.Invoke(ctx, rpc.CallElementByName, rpc.Lookup, func(ctx context.Context) (*wire.ElementInfo, error) {
		return client.ElementByName(ctx, &wire.ElementName{Name: "nope"})
	})
	require.ErrorIs(t, err, errors.ErrInvalidInstance)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, rpc.CallElementByName, e.Call)
	require.Contains(t, e.Message, "nope")
}

func TestClient_ClosedConnectionIsDisconnected(t *testing.T) {
	client := serve(t, enginetest.New(t))
	require.NoError(t, client.Close())

	_, err := rpc.Invoke(context.Background(), rpc.CallElementByName, rpc.Lookup, func(ctx context.Context) (*wire.ElementInfo, error) {
		return client.ElementByName(ctx, &wire.ElementName{Name: "x"})
	})
	require.Error(t, err)
}
