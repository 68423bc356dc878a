package datapin

import (
	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/reference"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/session"
	"github.com/wippyai/datapin/value"
)

type (
	Session        = session.Session
	Option         = session.Option
	Config         = session.Config
	Datapin        = session.Datapin
	Reference      = reference.Reference
	ReferenceArray = reference.Array
	Property       = reference.Property
	Target         = reference.Target

	Value    = value.Value
	Metadata = value.Metadata
	State    = value.State
	Kind     = value.Kind
	Shape    = value.Shape

	Integer = value.Integer
	Real    = value.Real
	Boolean = value.Boolean
	String  = value.String
	File    = value.File

	Error = errors.Error
)

// Dial connects to an engine. See session.Dial.
func Dial(target string, opts ...Option) (*Session, error) {
	return session.Dial(target, opts...)
}

// New creates a session over an existing engine transport. See session.New.
func New(engine rpc.Engine, opts ...Option) (*Session, error) {
	return session.New(engine, opts...)
}

var (
	ErrTypeMismatch       = errors.ErrTypeMismatch
	ErrUnsupportedKind    = errors.ErrUnsupportedKind
	ErrShapeMismatch      = errors.ErrShapeMismatch
	ErrIndexOutOfRange    = errors.ErrIndexOutOfRange
	ErrInvalidEquation    = errors.ErrInvalidEquation
	ErrNotDirectReference = errors.ErrNotDirectReference
	ErrInvalidData        = errors.ErrInvalidData

	ErrDisconnected    = errors.ErrDisconnected
	ErrInvalidInstance = errors.ErrInvalidInstance
	ErrInvalidArgument = errors.ErrInvalidArgument
	ErrOutOfRange      = errors.ErrOutOfRange
	ErrNameCollision   = errors.ErrNameCollision
	ErrInternal        = errors.ErrInternal
	ErrUnexpected      = errors.ErrUnexpected
)
