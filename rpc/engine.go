package rpc

import (
	"context"

	"github.com/wippyai/datapin/wire"
)

// ServiceName is the engine's gRPC service.
const ServiceName = "datapin.v1.EngineService"

// Engine call names, used as gRPC method names, log fields and metric
// labels.
const (
	CallElementByName = "ElementByName"
	CallElementInfo   = "ElementInfo"

	CallDatapinGetValue    = "DatapinGetValue"
	CallDatapinSetValue    = "DatapinSetValue"
	CallDatapinGetMetadata = "DatapinGetMetadata"
	CallDatapinSetMetadata = "DatapinSetMetadata"

	CallReferenceGetEquation = "ReferenceGetEquation"
	CallReferenceSetEquation = "ReferenceSetEquation"
	CallReferenceGetValue    = "ReferenceGetValue"
	CallReferenceSetValue    = "ReferenceSetValue"

	CallReferenceArrayGetLength = "ReferenceArrayGetLength"
	CallReferenceArraySetLength = "ReferenceArraySetLength"

	CallPropertyNames       = "ReferencePropertyNames"
	CallPropertyGetInfo     = "ReferencePropertyGetInfo"
	CallPropertyGetValue    = "ReferencePropertyGetValue"
	CallPropertySetValue    = "ReferencePropertySetValue"
	CallPropertyGetMetadata = "ReferencePropertyGetMetadata"
	CallPropertySetMetadata = "ReferencePropertySetMetadata"
)

// Engine is the remote engine's datapin and reference surface. Each method
// is one synchronous request. Implementations return gRPC status errors;
// callers interpret them through Invoke.
type Engine interface {
	ElementByName(ctx context.Context, req *wire.ElementName) (*wire.ElementInfo, error)
	ElementInfo(ctx context.Context, req *wire.ElementID) (*wire.ElementInfo, error)

	DatapinGetValue(ctx context.Context, req *wire.ElementID) (*wire.VariableState, error)
	DatapinSetValue(ctx context.Context, req *wire.SetValueRequest) (*wire.Empty, error)
	DatapinGetMetadata(ctx context.Context, req *wire.ElementID) (*wire.VariableMetadata, error)
	DatapinSetMetadata(ctx context.Context, req *wire.SetMetadataRequest) (*wire.Empty, error)

	ReferenceGetEquation(ctx context.Context, req *wire.ReferenceAddress) (*wire.Equation, error)
	ReferenceSetEquation(ctx context.Context, req *wire.SetEquationRequest) (*wire.Empty, error)
	ReferenceGetValue(ctx context.Context, req *wire.ReferenceAddress) (*wire.VariableState, error)
	ReferenceSetValue(ctx context.Context, req *wire.SetReferenceValueRequest) (*wire.Empty, error)

	ReferenceArrayGetLength(ctx context.Context, req *wire.ElementID) (*wire.Length, error)
	ReferenceArraySetLength(ctx context.Context, req *wire.SetLengthRequest) (*wire.Empty, error)

	ReferencePropertyNames(ctx context.Context, req *wire.ReferenceAddress) (*wire.PropertyNames, error)
	ReferencePropertyGetInfo(ctx context.Context, req *wire.PropertyAddress) (*wire.PropertyInfo, error)
	ReferencePropertyGetValue(ctx context.Context, req *wire.PropertyAddress) (*wire.VariableState, error)
	ReferencePropertySetValue(ctx context.Context, req *wire.SetPropertyValueRequest) (*wire.Empty, error)
	ReferencePropertyGetMetadata(ctx context.Context, req *wire.PropertyAddress) (*wire.VariableMetadata, error)
	ReferencePropertySetMetadata(ctx context.Context, req *wire.SetPropertyMetadataRequest) (*wire.Empty, error)
}
