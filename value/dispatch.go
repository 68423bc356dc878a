package value

import (
	"math"

	"github.com/wippyai/datapin/errors"
)

// Dispatch calls the Visitor method matching v's kind. A nil value or a
// kind outside the closed set is an unsupported_kind error.
func Dispatch(v Value, vis Visitor) error {
	switch v.(type) {
	case Integer, Real, Boolean, String, File,
		IntegerArray, RealArray, BooleanArray, StringArray, FileArray:
		return v.Accept(vis)
	case nil:
		return errors.UnsupportedKind(errors.PhaseValidate, nil, KindUnknown.String(), "nil value")
	default:
		return errors.UnsupportedKind(errors.PhaseValidate, nil, KindUnknown.String(), "value type outside the datapin kind set")
	}
}

// Zero returns the zero value of kind k: 0, 0.0, false, "", an empty file,
// or an empty one-dimensional array.
func Zero(k Kind) (Value, error) {
	switch k {
	case KindInteger:
		return Integer(0), nil
	case KindReal:
		return Real(0), nil
	case KindBoolean:
		return Boolean(false), nil
	case KindString:
		return String(""), nil
	case KindFile:
		return File{}, nil
	case KindIntegerArray:
		return IntegerArrayOf(), nil
	case KindRealArray:
		return RealArrayOf(), nil
	case KindBooleanArray:
		return BooleanArrayOf(), nil
	case KindStringArray:
		return StringArrayOf(), nil
	case KindFileArray:
		return FileArrayOf(), nil
	default:
		return nil, errors.UnsupportedKind(errors.PhaseValidate, nil, k.String(), "no zero value for kind")
	}
}

// Equal reports whether a and b are the same kind and hold the same data.
// Arrays must also agree in shape. NaN compares equal to NaN.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Real:
		return realEqual(float64(av), float64(b.(Real)))
	case IntegerArray:
		return arrayEqual(av.Array, b.(IntegerArray).Array, func(x, y int64) bool { return x == y })
	case RealArray:
		return arrayEqual(av.Array, b.(RealArray).Array, realEqual)
	case BooleanArray:
		return arrayEqual(av.Array, b.(BooleanArray).Array, func(x, y bool) bool { return x == y })
	case StringArray:
		return arrayEqual(av.Array, b.(StringArray).Array, func(x, y string) bool { return x == y })
	case FileArray:
		return arrayEqual(av.Array, b.(FileArray).Array, func(x, y File) bool { return x == y })
	default:
		return a == b
	}
}

func realEqual(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y
}

func arrayEqual[T any](a, b Array[T], eq func(T, T) bool) bool {
	if !a.Shape().Equal(b.Shape()) {
		return false
	}
	for i := range a.data {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}
