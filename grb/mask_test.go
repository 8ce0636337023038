package grb

import "testing"

func TestMaskVariantFlags(t *testing.T) {
	m := &Matrix{}

	tests := []struct {
		name       string
		mask       Mask
		complement bool
		structure  bool
		value      bool
		descValue  DescValue
	}{
		{
			name:      "structural",
			mask:      StructuralMask{M: m},
			structure: true,
			descValue: DescStructure,
		},
		{
			name:      "value",
			mask:      ValueMask{M: m},
			value:     true,
			descValue: DescDefault,
		},
		{
			name:       "complemented structural",
			mask:       ComplementedStructuralMask{M: m},
			complement: true,
			structure:  true,
			descValue:  DescCompStructure,
		},
		{
			name:       "complemented value",
			mask:       ComplementedValueMask{M: m},
			complement: true,
			value:      true,
			descValue:  DescComp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.Complement(); got != tt.complement {
				t.Errorf("Complement() = %v, want %v", got, tt.complement)
			}
			if got := tt.mask.Structure(); got != tt.structure {
				t.Errorf("Structure() = %v, want %v", got, tt.structure)
			}
			if got := tt.mask.Value(); got != tt.value {
				t.Errorf("Value() = %v, want %v", got, tt.value)
			}
			if got := tt.mask.descValue(); got != tt.descValue {
				t.Errorf("descValue() = %v, want %v", got, tt.descValue)
			}

			// Structure and value views are mutually exclusive.
			if tt.mask.Structure() == tt.mask.Value() {
				t.Error("mask cannot be both (or neither) structural and value")
			}
		})
	}
}

func TestMaskInvert(t *testing.T) {
	m := &Matrix{}

	tests := []struct {
		name string
		mask Mask
		want Mask
	}{
		{"structural", StructuralMask{M: m}, ComplementedStructuralMask{M: m}},
		{"value", ValueMask{M: m}, ComplementedValueMask{M: m}},
		{"complemented structural", ComplementedStructuralMask{M: m}, StructuralMask{M: m}},
		{"complemented value", ComplementedValueMask{M: m}, ValueMask{M: m}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mask.Invert()
			if got != tt.want {
				t.Errorf("Invert() = %T, want %T", got, tt.want)
			}

			// Inverting preserves the structure/value distinction and flips
			// only the complement flag.
			if got.Structure() != tt.mask.Structure() || got.Value() != tt.mask.Value() {
				t.Error("Invert() changed the structure/value distinction")
			}
			if got.Complement() == tt.mask.Complement() {
				t.Error("Invert() did not flip the complement flag")
			}

			if back := got.Invert(); back != tt.mask {
				t.Errorf("double inversion = %v, want original %v", back, tt.mask)
			}
		})
	}
}

func TestMaskAccessors(t *testing.T) {
	m := &Matrix{}
	v := &Vector{}

	if s := m.S(); s.M != Maskable(m) {
		t.Error("Matrix.S() does not wrap its matrix")
	}
	if vm := m.V(); vm.M != Maskable(m) {
		t.Error("Matrix.V() does not wrap its matrix")
	}
	if s := v.S(); s.M != Maskable(v) {
		t.Error("Vector.S() does not wrap its vector")
	}
	if vm := v.V(); vm.M != Maskable(v) {
		t.Error("Vector.V() does not wrap its vector")
	}
}

func TestMaskArgs(t *testing.T) {
	handle, desc := maskArgs(nil)
	if handle != 0 || desc != DescDefault {
		t.Errorf("maskArgs(nil) = (%v, %v), want (0, DescDefault)", handle, desc)
	}

	m := &Matrix{handle: 42}
	handle, desc = maskArgs(ComplementedValueMask{M: m})
	if handle != 42 {
		t.Errorf("maskArgs handle = %v, want 42", handle)
	}
	if desc != DescComp {
		t.Errorf("maskArgs desc = %v, want DescComp", desc)
	}
}
