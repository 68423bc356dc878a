package reference

import "testing"

func TestDirectName(t *testing.T) {
	tests := []struct {
		equation string
		want     string
		direct   bool
	}{
		{"gain", "gain", true},
		{"model.gain", "model.gain", true},
		{"  gain ", "gain", true},
		{"a.b.c", "a.b.c", true},
		{"gain * 2", "", false},
		{"gain[0]", "", false},
		{"gain.0", "", false},
		{`gain["x"]`, "", false},
		{"max(gain, 1)", "", false},
		{"1", "", false},
		{`"gain"`, "", false},
		{"-gain", "", false},
		{"gain +", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.equation, func(t *testing.T) {
			got, ok := DirectName(tt.equation)
			if ok != tt.direct || got != tt.want {
				t.Errorf("DirectName(%q) = %q, %v; want %q, %v", tt.equation, got, ok, tt.want, tt.direct)
			}
		})
	}
}
