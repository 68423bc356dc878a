package wire

// BaseMetadata is shared by every metadata message.
type BaseMetadata struct {
	Description    string                    `json:"description,omitempty"`
	CustomMetadata map[string]*VariableValue `json:"custom_metadata,omitempty"`
}

// NumericFormatting is shared by integer and real metadata.
type NumericFormatting struct {
	Units         string `json:"units,omitempty"`
	DisplayFormat string `json:"display_format,omitempty"`
}

type IntegerMetadata struct {
	Base        BaseMetadata      `json:"base"`
	Numeric     NumericFormatting `json:"numeric"`
	LowerBound  *int64            `json:"lower_bound,omitempty"`
	UpperBound  *int64            `json:"upper_bound,omitempty"`
	EnumValues  []int64           `json:"enum_values,omitempty"`
	EnumAliases []string          `json:"enum_aliases,omitempty"`
}

type RealMetadata struct {
	Base        BaseMetadata      `json:"base"`
	Numeric     NumericFormatting `json:"numeric"`
	LowerBound  *float64          `json:"lower_bound,omitempty"`
	UpperBound  *float64          `json:"upper_bound,omitempty"`
	EnumValues  []float64         `json:"enum_values,omitempty"`
	EnumAliases []string          `json:"enum_aliases,omitempty"`
}

type BooleanMetadata struct {
	Base BaseMetadata `json:"base"`
}

type StringMetadata struct {
	Base        BaseMetadata `json:"base"`
	EnumValues  []string     `json:"enum_values,omitempty"`
	EnumAliases []string     `json:"enum_aliases,omitempty"`
}

type FileMetadata struct {
	Base BaseMetadata `json:"base"`
}

// VariableMetadata is the oneof carrying metadata. Array datapins use the
// message of their element kind.
type VariableMetadata struct {
	Integer *IntegerMetadata `json:"int_metadata,omitempty"`
	Real    *RealMetadata    `json:"double_metadata,omitempty"`
	Boolean *BooleanMetadata `json:"bool_metadata,omitempty"`
	String  *StringMetadata  `json:"string_metadata,omitempty"`
	File    *FileMetadata    `json:"file_metadata,omitempty"`
}
