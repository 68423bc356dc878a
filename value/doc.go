// Package value defines the datapin value and metadata model.
//
// Values are immutable tagged variants over a fixed kind set:
//
//	Kind           Go type        Payload
//	──────────────────────────────────────────────
//	Integer        Integer        int64
//	Real           Real           float64
//	Boolean        Boolean        bool
//	String         String         string
//	File           File           local content path + description
//	IntegerArray   IntegerArray   Array[int64]
//	RealArray      RealArray      Array[float64]
//	BooleanArray   BooleanArray   Array[bool]
//	StringArray    StringArray    Array[string]
//	FileArray      FileArray      Array[File]
//
// Arrays are stored flat in row-major order next to their Shape. The
// constructors reject data whose length differs from the product of the
// dimensions, so Flatten and Shape always agree.
//
// # Dispatch
//
// Code that handles every kind implements Visitor and calls Dispatch (or
// Value.Accept). Visitor has one method per kind, so a new kind is a
// compile error in every visitor rather than a silently ignored case:
//
//	type printer struct{}
//
//	func (printer) VisitInteger(v value.Integer) error { ... }
//	// ... one method per kind
//
//	err := value.Dispatch(v, printer{})
//
// # Metadata
//
// Metadata mirrors the value kinds. CommonMetadata (description and custom
// entries) applies to all kinds, NumericMetadata (units, display format)
// to Integer and Real, and each kind adds its own bounds or enumerations.
// Bounds are pointers: nil means absent, which is distinct from zero.
//
// Metadata is gated by kind. Reading it through the wrong type fails:
//
//	md := value.RealMetadata{UpperBound: &hi}
//	_, err := value.MetadataAs[value.BooleanMetadata](md) // type_mismatch
package value
