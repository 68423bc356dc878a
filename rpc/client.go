package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wippyai/datapin/wire"
)

// Client is an Engine backed by a gRPC connection.
type Client struct {
	conn *grpc.ClientConn
}

var _ Engine = (*Client)(nil)

// Dial creates a client for the engine at target. Without options the
// connection is unencrypted, which suits an engine on the same host.
// The connection is established lazily on the first call.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)))
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// NewClient wraps an existing connection. Calls made through it select the
// engine codec themselves.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func invoke[Req, Resp any](ctx context.Context, c *Client, call string, req *Req) (*Resp, error) {
	resp := new(Resp)
	err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+call, req, resp, grpc.CallContentSubtype(CodecName))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ElementByName(ctx context.Context, req *wire.ElementName) (*wire.ElementInfo, error) {
	return invoke[wire.ElementName, wire.ElementInfo](ctx, c, CallElementByName, req)
}

func (c *Client) ElementInfo(ctx context.Context, req *wire.ElementID) (*wire.ElementInfo, error) {
	return invoke[wire.ElementID, wire.ElementInfo](ctx, c, CallElementInfo, req)
}

func (c *Client) DatapinGetValue(ctx context.Context, req *wire.ElementID) (*wire.VariableState, error) {
	return invoke[wire.ElementID, wire.VariableState](ctx, c, CallDatapinGetValue, req)
}

func (c *Client) DatapinSetValue(ctx context.Context, req *wire.SetValueRequest) (*wire.Empty, error) {
	return invoke[wire.SetValueRequest, wire.Empty](ctx, c, CallDatapinSetValue, req)
}

func (c *Client) DatapinGetMetadata(ctx context.Context, req *wire.ElementID) (*wire.VariableMetadata, error) {
	return invoke[wire.ElementID, wire.VariableMetadata](ctx, c, CallDatapinGetMetadata, req)
}

func (c *Client) DatapinSetMetadata(ctx context.Context, req *wire.SetMetadataRequest) (*wire.Empty, error) {
	return invoke[wire.SetMetadataRequest, wire.Empty](ctx, c, CallDatapinSetMetadata, req)
}

func (c *Client) ReferenceGetEquation(ctx context.Context, req *wire.ReferenceAddress) (*wire.Equation, error) {
	return invoke[wire.ReferenceAddress, wire.Equation](ctx, c, CallReferenceGetEquation, req)
}

func (c *Client) ReferenceSetEquation(ctx context.Context, req *wire.SetEquationRequest) (*wire.Empty, error) {
	return invoke[wire.SetEquationRequest, wire.Empty](ctx, c, CallReferenceSetEquation, req)
}

func (c *Client) ReferenceGetValue(ctx context.Context, req *wire.ReferenceAddress) (*wire.VariableState, error) {
	return invoke[wire.ReferenceAddress, wire.VariableState](ctx, c, CallReferenceGetValue, req)
}

func (c *Client) ReferenceSetValue(ctx context.Context, req *wire.SetReferenceValueRequest) (*wire.Empty, error) {
	return invoke[wire.SetReferenceValueRequest, wire.Empty](ctx, c, CallReferenceSetValue, req)
}

func (c *Client) ReferenceArrayGetLength(ctx context.Context, req *wire.ElementID) (*wire.Length, error) {
	return invoke[wire.ElementID, wire.Length](ctx, c, CallReferenceArrayGetLength, req)
}

func (c *Client) ReferenceArraySetLength(ctx context.Context, req *wire.SetLengthRequest) (*wire.Empty, error) {
	return invoke[wire.SetLengthRequest, wire.Empty](ctx, c, CallReferenceArraySetLength, req)
}

func (c *Client) ReferencePropertyNames(ctx context.Context, req *wire.ReferenceAddress) (*wire.PropertyNames, error) {
	return invoke[wire.ReferenceAddress, wire.PropertyNames](ctx, c, CallPropertyNames, req)
}

func (c *Client) ReferencePropertyGetInfo(ctx context.Context, req *wire.PropertyAddress) (*wire.PropertyInfo, error) {
	return invoke[wire.PropertyAddress, wire.PropertyInfo](ctx, c, CallPropertyGetInfo, req)
}

func (c *Client) ReferencePropertyGetValue(ctx context.Context, req *wire.PropertyAddress) (*wire.VariableState, error) {
	return invoke[wire.PropertyAddress, wire.VariableState](ctx, c, CallPropertyGetValue, req)
}

func (c *Client) ReferencePropertySetValue(ctx context.Context, req *wire.SetPropertyValueRequest) (*wire.Empty, error) {
	return invoke[wire.SetPropertyValueRequest, wire.Empty](ctx, c, CallPropertySetValue, req)
}

func (c *Client) ReferencePropertyGetMetadata(ctx context.Context, req *wire.PropertyAddress) (*wire.VariableMetadata, error) {
	return invoke[wire.PropertyAddress, wire.VariableMetadata](ctx, c, CallPropertyGetMetadata, req)
}

func (c *Client) ReferencePropertySetMetadata(ctx context.Context, req *wire.SetPropertyMetadataRequest) (*wire.Empty, error) {
	return invoke[wire.SetPropertyMetadataRequest, wire.Empty](ctx, c, CallPropertySetMetadata, req)
}
