package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// RegisterEngine exposes e as the engine service on s. It lets any Engine
// implementation, such as an in-process simulator, stand behind a real
// gRPC endpoint.
func RegisterEngine(s grpc.ServiceRegistrar, e Engine) {
	s.RegisterService(&serviceDesc, e)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Engine)(nil),
	Methods: []grpc.MethodDesc{
		unary(CallElementByName, Engine.ElementByName),
		unary(CallElementInfo, Engine.ElementInfo),
		unary(CallDatapinGetValue, Engine.DatapinGetValue),
		unary(CallDatapinSetValue, Engine.DatapinSetValue),
		unary(CallDatapinGetMetadata, Engine.DatapinGetMetadata),
		unary(CallDatapinSetMetadata, Engine.DatapinSetMetadata),
		unary(CallReferenceGetEquation, Engine.ReferenceGetEquation),
		unary(CallReferenceSetEquation, Engine.ReferenceSetEquation),
		unary(CallReferenceGetValue, Engine.ReferenceGetValue),
		unary(CallReferenceSetValue, Engine.ReferenceSetValue),
		unary(CallReferenceArrayGetLength, Engine.ReferenceArrayGetLength),
		unary(CallReferenceArraySetLength, Engine.ReferenceArraySetLength),
		unary(CallPropertyNames, Engine.ReferencePropertyNames),
		unary(CallPropertyGetInfo, Engine.ReferencePropertyGetInfo),
		unary(CallPropertyGetValue, Engine.ReferencePropertyGetValue),
		unary(CallPropertySetValue, Engine.ReferencePropertySetValue),
		unary(CallPropertyGetMetadata, Engine.ReferencePropertyGetMetadata),
		unary(CallPropertySetMetadata, Engine.ReferencePropertySetMetadata),
	},
	Metadata: "datapin/v1/engine.proto",
}

func unary[Req, Resp any](call string, method func(Engine, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: call,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return method(srv.(Engine), ctx, req)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + call,
			}
			handler := func(ctx context.Context, r any) (any, error) {
				return method(srv.(Engine), ctx, r.(*Req))
			}
			return interceptor(ctx, req, info, handler)
		},
	}
}
