// Package reference implements reference datapins.
//
// A reference holds no value of its own. It carries an equation, evaluated
// by the engine, and reads as whatever the equation yields. Two forms
// exist:
//
//	Reference  one equation
//	Array      an explicit number of elements, one equation each
//
// # Directness
//
// A reference is direct when its equation is exactly the name of one other
// plain datapin, for example "model.gain" but not "model.gain * 2",
// "gains[0]" or its own name. Only a direct reference can be written
// through, and only when the target is an input that is not linked:
//
//	t, err := ref.Target(ctx)
//	// t.Direct, t.Element.IsInput, t.Element.IsLinked
//	err = ref.SetState(ctx, value.Real(0.5))
//
// Equations are classified with the HCL expression parser; whether a name
// exists is asked of the engine.
//
// # Indices
//
// Array elements are addressed by index in [0, Length). Every indexed call
// reads the current length first, so an index is never clamped or
// wrapped: outside the range the call fails with index_out_of_range and
// no request for the element is made.
//
// # Properties
//
// Each reference, and each element of an array, can expose named
// properties with their own kind, value and metadata. A Property of an
// array element rechecks the element index before each request.
package reference
