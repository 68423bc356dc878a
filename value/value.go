package value

// Value is an immutable datapin value. The set of implementations is
// closed; Accept dispatches to exactly one Visitor method per kind.
type Value interface {
	Kind() Kind
	Accept(Visitor) error
	isValue()
}

// Visitor has one method per value kind. Adding a kind adds a method, so
// every visitor in the tree stops compiling until it handles the new kind.
type Visitor interface {
	VisitInteger(Integer) error
	VisitReal(Real) error
	VisitBoolean(Boolean) error
	VisitString(String) error
	VisitFile(File) error
	VisitIntegerArray(IntegerArray) error
	VisitRealArray(RealArray) error
	VisitBooleanArray(BooleanArray) error
	VisitStringArray(StringArray) error
	VisitFileArray(FileArray) error
}

type (
	Integer int64
	Real    float64
	Boolean bool
	String  string
)

// File is a file payload held on the local filesystem. Path names the
// content; the remaining fields describe it.
type File struct {
	Path         string
	OriginalName string
	MimeType     string
	Encoding     string
}

func (Integer) Kind() Kind { return KindInteger }
func (Real) Kind() Kind    { return KindReal }
func (Boolean) Kind() Kind { return KindBoolean }
func (String) Kind() Kind  { return KindString }
func (File) Kind() Kind    { return KindFile }

func (v Integer) Accept(vis Visitor) error { return vis.VisitInteger(v) }
func (v Real) Accept(vis Visitor) error    { return vis.VisitReal(v) }
func (v Boolean) Accept(vis Visitor) error { return vis.VisitBoolean(v) }
func (v String) Accept(vis Visitor) error  { return vis.VisitString(v) }
func (v File) Accept(vis Visitor) error    { return vis.VisitFile(v) }

func (Integer) isValue() {}
func (Real) isValue()    {}
func (Boolean) isValue() {}
func (String) isValue()  {}
func (File) isValue()    {}

// State is a value as reported by the engine together with its validity.
type State struct {
	Value Value
	Valid bool
}
