package reference

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/wippyai/datapin/errors"
	"github.com/wippyai/datapin/rpc"
	"github.com/wippyai/datapin/wire"
)

// Target is what a reference's equation resolves to.
type Target struct {
	Equation string

	// Direct is set when Equation is exactly the name of one other plain
	// datapin. Element is only populated for direct targets.
	Direct  bool
	Element wire.ElementInfo
}

// Writable reports whether a write through the reference can reach the
// target.
func (t Target) Writable() bool {
	return t.Direct && t.Element.IsInput && !t.Element.IsLinked
}

// DirectName returns the datapin name an equation consists of, if it is a
// bare name: one identifier or a dotted path of identifiers, with no
// operators, calls, literals or index steps.
func DirectName(equation string) (string, bool) {
	if strings.TrimSpace(equation) == "" {
		return "", false
	}
	expr, diags := hclsyntax.ParseExpression([]byte(equation), "equation", hcl.InitialPos)
	if diags.HasErrors() {
		return "", false
	}
	trav, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return "", false
	}

	parts := make([]string, 0, len(trav))
	for _, step := range trav {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			parts = append(parts, s.Name)
		case hcl.TraverseAttr:
			parts = append(parts, s.Name)
		default:
			return "", false
		}
	}
	return strings.Join(parts, "."), true
}

// resolve classifies equation as seen from the reference self.
func resolve(ctx context.Context, engine rpc.Engine, self wire.ElementInfo, equation string) (Target, error) {
	t := Target{Equation: equation}
	name, ok := DirectName(equation)
	if !ok || name == self.Name {
		return t, nil
	}

	info, err := rpc.Invoke(ctx, rpc.CallElementByName, rpc.Lookup, func(ctx context.Context) (*wire.ElementInfo, error) {
		return engine.ElementByName(ctx, &wire.ElementName{Name: name})
	})
	if errors.Is(err, errors.ErrInvalidInstance) {
		return t, nil
	}
	if err != nil {
		return Target{}, err
	}
	if info.ID == self.ID || info.Reference != wire.NotReference {
		return t, nil
	}

	t.Direct = true
	t.Element = *info
	return t, nil
}
