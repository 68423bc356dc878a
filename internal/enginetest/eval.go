package enginetest

import (
	"math/big"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wippyai/datapin/wire"
)

func checkEquation(eq string) error {
	if strings.TrimSpace(eq) == "" {
		return nil
	}
	if _, diags := hclsyntax.ParseExpression([]byte(eq), "equation", hcl.InitialPos); diags.HasErrors() {
		return status.Errorf(codes.InvalidArgument, "equation %q: %s", eq, diags.Error())
	}
	return nil
}

// target resolves an equation that names a plain datapin.
func (e *Engine) target(eq string) (*element, bool) {
	expr, diags := hclsyntax.ParseExpression([]byte(eq), "equation", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, false
	}
	trav, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return nil, false
	}
	parts := make([]string, 0, len(trav))
	for _, step := range trav {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			parts = append(parts, s.Name)
		case hcl.TraverseAttr:
			parts = append(parts, s.Name)
		default:
			return nil, false
		}
	}
	el, ok := e.byName[strings.Join(parts, ".")]
	if !ok || el.info.Reference != wire.NotReference {
		return nil, false
	}
	return el, true
}

// evaluate computes the state of a reference. A bare datapin name yields
// that datapin's value; other equations are evaluated over the scalar
// datapins without dots in their names. Anything that cannot be evaluated
// yields an invalid state.
func (e *Engine) evaluate(eq string) *wire.VariableState {
	invalid := &wire.VariableState{Value: &wire.VariableValue{IntValue: new(int64)}}
	if strings.TrimSpace(eq) == "" {
		return invalid
	}
	if el, ok := e.target(eq); ok {
		return &wire.VariableState{Value: el.value, IsValid: true}
	}

	expr, diags := hclsyntax.ParseExpression([]byte(eq), "equation", hcl.InitialPos)
	if diags.HasErrors() {
		return invalid
	}
	vars := make(map[string]cty.Value)
	for name, el := range e.byName {
		if strings.Contains(name, ".") || el.info.Reference != wire.NotReference {
			continue
		}
		if v, ok := toCty(el.value); ok {
			vars[name] = v
		}
	}
	result, diags := expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return invalid
	}
	msg, ok := fromCty(result)
	if !ok {
		return invalid
	}
	return &wire.VariableState{Value: msg, IsValid: true}
}

func toCty(msg *wire.VariableValue) (cty.Value, bool) {
	switch {
	case msg.IntValue != nil:
		return cty.NumberIntVal(*msg.IntValue), true
	case msg.DoubleValue != nil:
		return cty.NumberFloatVal(*msg.DoubleValue), true
	case msg.BoolValue != nil:
		return cty.BoolVal(*msg.BoolValue), true
	case msg.StringValue != nil:
		return cty.StringVal(*msg.StringValue), true
	}
	return cty.NilVal, false
}

// fromCty converts an evaluation result. Whole numbers become integers.
func fromCty(v cty.Value) (*wire.VariableValue, bool) {
	if v.IsNull() || !v.IsKnown() {
		return nil, false
	}
	switch v.Type() {
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return &wire.VariableValue{IntValue: &i}, true
			}
		}
		f, _ := bf.Float64()
		return &wire.VariableValue{DoubleValue: &f}, true
	case cty.Bool:
		b := v.True()
		return &wire.VariableValue{BoolValue: &b}, true
	case cty.String:
		s := v.AsString()
		return &wire.VariableValue{StringValue: &s}, true
	}
	return nil, false
}
