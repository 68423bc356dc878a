package wire

// ElementID is the engine-assigned token identifying an entity across calls.
type ElementID struct {
	ID string `json:"id_string"`
}

// ValueType names a datapin kind on the wire.
type ValueType string

const (
	TypeUnspecified  ValueType = ""
	TypeInteger      ValueType = "integer"
	TypeReal         ValueType = "double"
	TypeBoolean      ValueType = "boolean"
	TypeString       ValueType = "string"
	TypeFile         ValueType = "file"
	TypeIntegerArray ValueType = "integer[]"
	TypeRealArray    ValueType = "double[]"
	TypeBooleanArray ValueType = "boolean[]"
	TypeStringArray  ValueType = "string[]"
	TypeFileArray    ValueType = "file[]"
)

// ElementName addresses an entity by its full dotted name.
type ElementName struct {
	Name string `json:"name"`
}

// ElementInfo describes a datapin as returned by a lookup.
type ElementInfo struct {
	ID        ElementID     `json:"id"`
	Name      string        `json:"name"`
	Type      ValueType     `json:"value_type"`
	IsInput   bool          `json:"is_input"`
	IsLinked  bool          `json:"is_linked"`
	Reference ReferenceForm `json:"reference_form"`
}

// ReferenceForm says whether a datapin is a reference, and of which form.
type ReferenceForm string

const (
	NotReference    ReferenceForm = ""
	ScalarReference ReferenceForm = "scalar"
	ArrayReference  ReferenceForm = "array"
)

type SetValueRequest struct {
	Target ElementID      `json:"target"`
	Value  *VariableValue `json:"new_value"`
}

type SetMetadataRequest struct {
	Target   ElementID         `json:"target"`
	Metadata *VariableMetadata `json:"new_metadata"`
}

type Empty struct{}
