package value

// Kind identifies the concrete variant of a Value or Metadata.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInteger
	KindReal
	KindBoolean
	KindString
	KindFile
	KindIntegerArray
	KindRealArray
	KindBooleanArray
	KindStringArray
	KindFileArray
)

var kindNames = [...]string{
	KindUnknown:      "Unknown",
	KindInteger:      "Integer",
	KindReal:         "Real",
	KindBoolean:      "Boolean",
	KindString:       "String",
	KindFile:         "File",
	KindIntegerArray: "IntegerArray",
	KindRealArray:    "RealArray",
	KindBooleanArray: "BooleanArray",
	KindStringArray:  "StringArray",
	KindFileArray:    "FileArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// IsArray reports whether k is one of the array kinds.
func (k Kind) IsArray() bool {
	return k >= KindIntegerArray && k <= KindFileArray
}

// IsFile reports whether k carries file payloads.
func (k Kind) IsFile() bool {
	return k == KindFile || k == KindFileArray
}

// IsNumeric reports whether k carries numeric metadata (units, bounds).
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindReal, KindIntegerArray, KindRealArray:
		return true
	}
	return false
}

// Element returns the scalar kind of an array kind. Scalar kinds return
// themselves.
func (k Kind) Element() Kind {
	if k.IsArray() {
		return k - (KindIntegerArray - KindInteger)
	}
	return k
}

// Array returns the array kind whose elements are of scalar kind k.
// Array kinds return themselves.
func (k Kind) Array() Kind {
	if k >= KindInteger && k <= KindFile {
		return k + (KindIntegerArray - KindInteger)
	}
	return k
}
