package errors

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseEncode,
				Kind:     KindTypeMismatch,
				Path:     []string{"metadata", "custom", "tolerance"},
				Expected: "Real",
				Actual:   "String",
				Detail:   "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "metadata.custom.tolerance", "expected Real", "got String", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindShapeMismatch,
			},
			contains: []string{"[decode]", "shape_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStage,
				Kind:   KindInvalidData,
				Detail: "copy failed",
				Cause:  errors.New("disk full"),
			},
			contains: []string{"[stage]", "invalid_data", "copy failed", "caused by", "disk full"},
		},
		{
			name:     "engine status",
			err:      Engine(KindUnexpected, "ReferenceGetEquation", codes.PermissionDenied, "locked"),
			contains: []string{"[engine]", "unexpected", "ReferenceGetEquation", "PermissionDenied", "locked"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindTypeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindShapeMismatch}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("sentinel without phase should match any phase")
	}
	if errors.Is(err, ErrUnsupportedKind) {
		t.Error("sentinel of a different kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindTypeMismatch).
		Path("metadata").
		Expected("Boolean").
		Actual("Real").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "bool", "double").
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 1 || err.Path[0] != "metadata" {
		t.Errorf("Path = %v, want [metadata]", err.Path)
	}
	if err.Expected != "Boolean" || err.Actual != "Real" {
		t.Errorf("Expected=%v Actual=%v", err.Expected, err.Actual)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected bool, got double" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ShapeMismatch", func(t *testing.T) {
		err := ShapeMismatch(PhaseDecode, []string{"int_array"}, []int{2, 3}, 5)
		if err.Kind != KindShapeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindShapeMismatch)
		}
		if !strings.Contains(err.Detail, "6") || !strings.Contains(err.Detail, "5") {
			t.Errorf("Detail = %q, should name expected and actual counts", err.Detail)
		}
	})

	t.Run("ShapeMismatchOverflow", func(t *testing.T) {
		err := ShapeMismatch(PhaseDecode, nil, []int{math.MaxInt, 4}, 1)
		if !strings.Contains(err.Detail, "overflow") {
			t.Errorf("Detail = %q, should report the overflowing dimensions", err.Detail)
		}
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		err := IndexOutOfRange(PhaseReference, []string{"refs"}, 3, 3)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIndexOutOfRange)
		}
		if err.Value != 3 {
			t.Errorf("Value = %v, want 3", err.Value)
		}
	})

	t.Run("UnsupportedKind", func(t *testing.T) {
		err := UnsupportedKind(PhaseEncode, nil, "File", "remote engine")
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupportedKind)
		}
		if err.Actual != "File" {
			t.Errorf("Actual = %v, want File", err.Actual)
		}
	})

	t.Run("NotDirectReference", func(t *testing.T) {
		err := NotDirectReference([]string{"ref"}, "a + b")
		if !errors.Is(err, ErrNotDirectReference) {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotDirectReference)
		}
	})

	t.Run("Engine", func(t *testing.T) {
		err := Engine(KindInvalidInstance, "DatapinGetValue", codes.NotFound, "gone")
		if !errors.Is(err, ErrInvalidInstance) {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInstance)
		}
		if err.Code != codes.NotFound || err.Message != "gone" {
			t.Errorf("Code=%v Message=%q", err.Code, err.Message)
		}
	})
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("set gain: %w", IndexOutOfRange(PhaseValidate, nil, 3, 3))
	if got := KindOf(wrapped); got != KindIndexOutOfRange {
		t.Errorf("KindOf() = %q, want %q", got, KindIndexOutOfRange)
	}
	if !Is(wrapped, ErrIndexOutOfRange) {
		t.Error("Is() should see through fmt wrapping")
	}
	if got := KindOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}
