package errors

import (
	"fmt"
	"math"
	"strings"

	"google.golang.org/grpc/codes"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode    Phase = "encode"    // value model to wire message
	PhaseDecode    Phase = "decode"    // wire message to value model
	PhaseValidate  Phase = "validate"  // argument validation before a request
	PhaseStage     Phase = "stage"     // file staging and materialization
	PhaseReference Phase = "reference" // reference indirection checks
	PhaseEngine    Phase = "engine"    // remote engine call
)

// Kind categorizes the error
type Kind string

// Conversion and validation kinds, raised at the point of detection.
const (
	KindTypeMismatch       Kind = "type_mismatch"
	KindUnsupportedKind    Kind = "unsupported_kind"
	KindShapeMismatch      Kind = "shape_mismatch"
	KindIndexOutOfRange    Kind = "index_out_of_range"
	KindInvalidEquation    Kind = "invalid_equation"
	KindNotDirectReference Kind = "not_direct_reference"
	KindInvalidData        Kind = "invalid_data"
)

// Engine-derived kinds, raised only by status interpretation.
const (
	KindDisconnected    Kind = "disconnected"
	KindInvalidInstance Kind = "invalid_instance"
	KindInvalidArgument Kind = "invalid_argument"
	KindOutOfRange      Kind = "out_of_range"
	KindNameCollision   Kind = "name_collision"
	KindInternal        Kind = "internal"
	KindUnexpected      Kind = "unexpected"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrTypeMismatch       = &Error{Kind: KindTypeMismatch}
	ErrUnsupportedKind    = &Error{Kind: KindUnsupportedKind}
	ErrShapeMismatch      = &Error{Kind: KindShapeMismatch}
	ErrIndexOutOfRange    = &Error{Kind: KindIndexOutOfRange}
	ErrInvalidEquation    = &Error{Kind: KindInvalidEquation}
	ErrNotDirectReference = &Error{Kind: KindNotDirectReference}
	ErrInvalidData        = &Error{Kind: KindInvalidData}

	ErrDisconnected    = &Error{Kind: KindDisconnected}
	ErrInvalidInstance = &Error{Kind: KindInvalidInstance}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrOutOfRange      = &Error{Kind: KindOutOfRange}
	ErrNameCollision   = &Error{Kind: KindNameCollision}
	ErrInternal        = &Error{Kind: KindInternal}
	ErrUnexpected      = &Error{Kind: KindUnexpected}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Actual   string
	Detail   string
	Path     []string

	// Call, Code and Message are set on errors interpreted from an engine
	// status. Code is the original status code as returned by the transport.
	Call    string
	Code    codes.Code
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Call != "" {
		b.WriteString(" in ")
		b.WriteString(e.Call)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	hasTypes := e.Expected != "" || e.Actual != ""
	if hasTypes {
		b.WriteString(": ")
		switch {
		case e.Expected != "" && e.Actual != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
			b.WriteString(", got ")
			b.WriteString(e.Actual)
		case e.Expected != "":
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		default:
			b.WriteString("got ")
			b.WriteString(e.Actual)
		}
	}

	if e.Detail != "" {
		if hasTypes {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Phase == PhaseEngine && (e.Code != codes.OK || e.Message != "") {
		fmt.Fprintf(&b, " (status %s: %s)", e.Code, e.Message)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Expected sets the expected kind name
func (b *Builder) Expected(k string) *Builder {
	b.err.Expected = k
	return b
}

// Actual sets the actual kind name
func (b *Builder) Actual(k string) *Builder {
	b.err.Actual = k
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error naming both kinds
func TypeMismatch(phase Phase, path []string, expected, actual string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		Expected: expected,
		Actual:   actual,
	}
}

// UnsupportedKind creates an error for a value kind that cannot be carried
// in the current context.
func UnsupportedKind(phase Phase, path []string, kind, why string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedKind,
		Path:   path,
		Actual: kind,
		Detail: why,
	}
}

// ShapeMismatch creates an error for array dimensions that disagree with
// the number of flattened values.
func ShapeMismatch(phase Phase, path []string, dims []int, length int) *Error {
	detail := fmt.Sprintf("dimensions %v overflow the element count, got %d values", dims, length)
	if product, ok := dimsProduct(dims); ok {
		detail = fmt.Sprintf("dimensions %v hold %d values, got %d", dims, product, length)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindShapeMismatch,
		Path:   path,
		Detail: detail,
		Value:  length,
	}
}

func dimsProduct(dims []int) (int, bool) {
	product := 1
	for _, d := range dims {
		if d == 0 {
			return 0, true
		}
		if d < 0 || product > math.MaxInt/d {
			return 0, false
		}
		product *= d
	}
	return product, true
}

// IndexOutOfRange creates an out of range index error
func IndexOutOfRange(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndexOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Value:  index,
	}
}

// InvalidEquation creates an error for an equation that cannot be parsed
func InvalidEquation(path []string, equation string, cause error) *Error {
	return &Error{
		Phase:  PhaseReference,
		Kind:   KindInvalidEquation,
		Path:   path,
		Detail: fmt.Sprintf("invalid equation %q", equation),
		Value:  equation,
		Cause:  cause,
	}
}

// NotDirectReference creates an error for a write through a reference
// whose equation is not a bare datapin name.
func NotDirectReference(path []string, equation string) *Error {
	return &Error{
		Phase:  PhaseReference,
		Kind:   KindNotDirectReference,
		Path:   path,
		Detail: fmt.Sprintf("equation %q does not name a single datapin", equation),
		Value:  equation,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidArgument creates an error for an argument rejected before any
// request is sent.
func InvalidArgument(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Path:   path,
		Detail: detail,
	}
}

// Engine creates an error interpreted from an engine status.
func Engine(kind Kind, call string, code codes.Code, msg string) *Error {
	return &Error{
		Phase:   PhaseEngine,
		Kind:    kind,
		Call:    call,
		Code:    code,
		Message: msg,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
