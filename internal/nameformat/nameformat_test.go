package nameformat

import "testing"

func TestEnumValueName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "a", "a"},
		{"dashes", "b-c", "bc"},
		{"leading digit", "2d", "N2d"},
		{"empty", "", "-"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EnumValueName(tt.in); got != tt.want {
				t.Errorf("EnumValueName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartsWithDigit(t *testing.T) {
	t.Parallel()
	if !StartsWithDigit("2D") {
		t.Error("expected true for a numeric-prefixed identifier")
	}
	if StartsWithDigit("SMALL") {
		t.Error("expected false for a letter-prefixed identifier")
	}
}

func TestParamName(t *testing.T) {
	t.Parallel()
	if got := ParamName("class"); got != "class_" {
		t.Errorf("ParamName(%q) = %q, want %q", "class", got, "class_")
	}
	if got := ParamName("value"); got != "value" {
		t.Errorf("ParamName(%q) = %q, want %q", "value", got, "value")
	}
}

func TestPropertyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          string
		allowQuotes bool
		want        string
	}{
		{"no dash", "label", true, "label"},
		{"dash quoted", "can-focus", true, `"can-focus"`},
		{"dash camel", "can-focus", false, "canFocus"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PropertyName(tt.in, tt.allowQuotes); got != tt.want {
				t.Errorf("PropertyName(%q, %v) = %q, want %q", tt.in, tt.allowQuotes, got, tt.want)
			}
		})
	}
}

func TestConstantName(t *testing.T) {
	t.Parallel()
	if got := ConstantName("2D_MAX"); got != "N2D_MAX" {
		t.Errorf("ConstantName numeric prefix: got %q", got)
	}
	if got := ConstantName("MAX_SIZE"); got != "MAX_SIZE" {
		t.Errorf("ConstantName passthrough: got %q", got)
	}
}
