package value

import (
	"math"
	"strconv"

	"github.com/wippyai/datapin/errors"
)

// Shape holds the dimension lengths of an array, outermost first.
type Shape []int

// Size returns the number of elements an array of this shape holds.
// It saturates at math.MaxInt when the product does not fit an int.
func (s Shape) Size() int {
	n, ok := s.size()
	if !ok {
		return math.MaxInt
	}
	return n
}

// size multiplies the dimensions, reporting false on overflow. A zero
// dimension makes the product zero whatever the others are.
func (s Shape) size() (int, bool) {
	for _, d := range s {
		if d == 0 {
			return 0, true
		}
	}
	n := 1
	for _, d := range s {
		if n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Array is a dense array stored flat in row-major order.
// The zero value is an empty one-dimensional array.
type Array[T any] struct {
	data  []T
	shape Shape
}

// NewArray creates an array over data with the given dimensions. Without
// dimensions the array is one-dimensional. The product of the dimensions
// must equal len(data).
func NewArray[T any](data []T, dims ...int) (Array[T], error) {
	if len(dims) == 0 {
		dims = []int{len(data)}
	}
	for i, d := range dims {
		if d < 0 {
			return Array[T]{}, errors.InvalidData(errors.PhaseValidate,
				[]string{"dims[" + strconv.Itoa(i) + "]"},
				"negative dimension "+strconv.Itoa(d))
		}
	}
	shape := Shape(append([]int(nil), dims...))
	size, ok := shape.size()
	if !ok {
		return Array[T]{}, errors.New(errors.PhaseValidate, errors.KindShapeMismatch).
			Detail("dimensions %v overflow the element count", []int(shape)).
			Value(len(data)).
			Build()
	}
	if size != len(data) {
		return Array[T]{}, errors.ShapeMismatch(errors.PhaseValidate, nil, shape, len(data))
	}
	return Array[T]{
		data:  append([]T(nil), data...),
		shape: shape,
	}, nil
}

// Flatten returns a copy of the elements in row-major order.
func (a Array[T]) Flatten() []T {
	return append([]T(nil), a.data...)
}

// Shape returns a copy of the dimension lengths.
func (a Array[T]) Shape() Shape {
	if a.shape == nil {
		return Shape{len(a.data)}
	}
	return append(Shape(nil), a.shape...)
}

// Len returns the total number of elements.
func (a Array[T]) Len() int { return len(a.data) }

// Rank returns the number of dimensions.
func (a Array[T]) Rank() int {
	if a.shape == nil {
		return 1
	}
	return len(a.shape)
}

// At returns the element at the given multi-index.
func (a Array[T]) At(idx ...int) (T, error) {
	var zero T
	shape := a.Shape()
	if len(idx) != len(shape) {
		return zero, errors.InvalidArgument(errors.PhaseValidate, nil,
			"index rank "+strconv.Itoa(len(idx))+" does not match array rank "+strconv.Itoa(len(shape)))
	}
	offset := 0
	for i, x := range idx {
		if x < 0 || x >= shape[i] {
			return zero, errors.IndexOutOfRange(errors.PhaseValidate,
				[]string{"dim[" + strconv.Itoa(i) + "]"}, x, shape[i])
		}
		offset = offset*shape[i] + x
	}
	return a.data[offset], nil
}

func oneDim[T any](data []T) Array[T] {
	return Array[T]{data: append([]T(nil), data...), shape: Shape{len(data)}}
}

type (
	IntegerArray struct{ Array[int64] }
	RealArray    struct{ Array[float64] }
	BooleanArray struct{ Array[bool] }
	StringArray  struct{ Array[string] }
	FileArray    struct{ Array[File] }
)

func NewIntegerArray(data []int64, dims ...int) (IntegerArray, error) {
	a, err := NewArray(data, dims...)
	return IntegerArray{a}, err
}

func NewRealArray(data []float64, dims ...int) (RealArray, error) {
	a, err := NewArray(data, dims...)
	return RealArray{a}, err
}

func NewBooleanArray(data []bool, dims ...int) (BooleanArray, error) {
	a, err := NewArray(data, dims...)
	return BooleanArray{a}, err
}

func NewStringArray(data []string, dims ...int) (StringArray, error) {
	a, err := NewArray(data, dims...)
	return StringArray{a}, err
}

func NewFileArray(data []File, dims ...int) (FileArray, error) {
	a, err := NewArray(data, dims...)
	return FileArray{a}, err
}

// IntegerArrayOf returns a one-dimensional array of the given elements.
func IntegerArrayOf(data ...int64) IntegerArray {
	return IntegerArray{oneDim(data)}
}

// RealArrayOf returns a one-dimensional array of the given elements.
func RealArrayOf(data ...float64) RealArray {
	return RealArray{oneDim(data)}
}

// BooleanArrayOf returns a one-dimensional array of the given elements.
func BooleanArrayOf(data ...bool) BooleanArray {
	return BooleanArray{oneDim(data)}
}

// StringArrayOf returns a one-dimensional array of the given elements.
func StringArrayOf(data ...string) StringArray {
	return StringArray{oneDim(data)}
}

// FileArrayOf returns a one-dimensional array of the given elements.
func FileArrayOf(data ...File) FileArray {
	return FileArray{oneDim(data)}
}

func (IntegerArray) Kind() Kind { return KindIntegerArray }
func (RealArray) Kind() Kind    { return KindRealArray }
func (BooleanArray) Kind() Kind { return KindBooleanArray }
func (StringArray) Kind() Kind  { return KindStringArray }
func (FileArray) Kind() Kind    { return KindFileArray }

func (v IntegerArray) Accept(vis Visitor) error { return vis.VisitIntegerArray(v) }
func (v RealArray) Accept(vis Visitor) error    { return vis.VisitRealArray(v) }
func (v BooleanArray) Accept(vis Visitor) error { return vis.VisitBooleanArray(v) }
func (v StringArray) Accept(vis Visitor) error  { return vis.VisitStringArray(v) }
func (v FileArray) Accept(vis Visitor) error    { return vis.VisitFileArray(v) }

func (IntegerArray) isValue() {}
func (RealArray) isValue()    {}
func (BooleanArray) isValue() {}
func (StringArray) isValue()  {}
func (FileArray) isValue()    {}
