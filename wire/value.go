package wire

// VariableValue is the oneof carrying one datapin value.
type VariableValue struct {
	IntValue    *int64       `json:"int_value,omitempty"`
	DoubleValue *float64     `json:"double_value,omitempty"`
	BoolValue   *bool        `json:"bool_value,omitempty"`
	StringValue *string      `json:"string_value,omitempty"`
	FileValue   *FileValue   `json:"file_value,omitempty"`
	IntArray    *IntArray    `json:"int_array_value,omitempty"`
	DoubleArray *DoubleArray `json:"double_array_value,omitempty"`
	BoolArray   *BoolArray   `json:"bool_array_value,omitempty"`
	StringArray *StringArray `json:"string_array_value,omitempty"`
	FileArray   *FileArray   `json:"file_array_value,omitempty"`
}

// FileValue references file content on the filesystem shared with the
// engine.
type FileValue struct {
	ContentPath  string `json:"content_path"`
	OriginalName string `json:"original_file_name,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	Encoding     string `json:"encoding,omitempty"`
}

// Array messages carry row-major flattened values and the dimension
// lengths.
type (
	IntArray struct {
		Values []int64  `json:"values"`
		Dims   []uint32 `json:"dims"`
	}
	DoubleArray struct {
		Values []float64 `json:"values"`
		Dims   []uint32  `json:"dims"`
	}
	BoolArray struct {
		Values []bool   `json:"values"`
		Dims   []uint32 `json:"dims"`
	}
	StringArray struct {
		Values []string `json:"values"`
		Dims   []uint32 `json:"dims"`
	}
	FileArray struct {
		Values []FileValue `json:"values"`
		Dims   []uint32    `json:"dims"`
	}
)

// VariableState is a value with the engine's validity flag.
type VariableState struct {
	Value   *VariableValue `json:"value"`
	IsValid bool           `json:"is_valid"`
}
