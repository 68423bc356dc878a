package wire

// ReferenceAddress addresses a scalar reference (Index nil) or one element
// of a reference array.
type ReferenceAddress struct {
	Target ElementID `json:"reference_var"`
	Index  *uint32   `json:"index,omitempty"`
}

type Equation struct {
	Equation string `json:"equation"`
}

type SetEquationRequest struct {
	Address  ReferenceAddress `json:"target"`
	Equation string           `json:"equation"`
}

type SetReferenceValueRequest struct {
	Address ReferenceAddress `json:"target"`
	Value   *VariableValue   `json:"new_value"`
}

type Length struct {
	Length uint32 `json:"length"`
}

type SetLengthRequest struct {
	Target ElementID `json:"target"`
	Length uint32    `json:"new_size"`
}

// PropertyAddress addresses a named property of a scalar reference or of
// one element of a reference array.
type PropertyAddress struct {
	Owner ReferenceAddress `json:"reference_var"`
	Name  string           `json:"prop_name"`
}

type PropertyNames struct {
	Names []string `json:"names"`
}

type PropertyInfo struct {
	Type    ValueType `json:"value_type"`
	IsInput bool      `json:"is_input"`
}

type SetPropertyValueRequest struct {
	Address PropertyAddress `json:"target"`
	Value   *VariableValue  `json:"new_value"`
}

type SetPropertyMetadataRequest struct {
	Address  PropertyAddress   `json:"target"`
	Metadata *VariableMetadata `json:"new_metadata"`
}
