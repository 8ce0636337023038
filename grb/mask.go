package grb

// Maskable is a GraphBLAS collection that can serve as a write mask.
// *Matrix and *Vector implement it.
type Maskable interface {
	maskHandle() uintptr
}

// Mask selects which output entries an operation may write. The four
// implementations toggle two flags: whether only the structure of the mask
// matters (as opposed to its stored values), and whether the selection is
// complemented.
type Mask interface {
	// Complement reports whether the selection is complemented.
	Complement() bool
	// Structure reports whether only the mask's structure is considered.
	Structure() bool
	// Value reports whether the mask's stored values are considered.
	Value() bool
	// Invert returns the complemented form of this mask, preserving the
	// structure/value distinction. Inverting twice yields an equal mask.
	Invert() Mask

	parent() Maskable
	descValue() DescValue
}

// StructuralMask selects output entries wherever the mask has a stored entry,
// regardless of the entry's value.
type StructuralMask struct {
	M Maskable
}

func (m StructuralMask) Complement() bool     { return false }
func (m StructuralMask) Structure() bool      { return true }
func (m StructuralMask) Value() bool          { return false }
func (m StructuralMask) Invert() Mask         { return ComplementedStructuralMask{m.M} }
func (m StructuralMask) parent() Maskable     { return m.M }
func (m StructuralMask) descValue() DescValue { return DescStructure }

// ValueMask selects output entries wherever the mask has a stored entry whose
// value is truthy.
type ValueMask struct {
	M Maskable
}

func (m ValueMask) Complement() bool     { return false }
func (m ValueMask) Structure() bool      { return false }
func (m ValueMask) Value() bool          { return true }
func (m ValueMask) Invert() Mask         { return ComplementedValueMask{m.M} }
func (m ValueMask) parent() Maskable     { return m.M }
func (m ValueMask) descValue() DescValue { return DescDefault }

// ComplementedStructuralMask selects output entries wherever the mask has no
// stored entry.
type ComplementedStructuralMask struct {
	M Maskable
}

func (m ComplementedStructuralMask) Complement() bool     { return true }
func (m ComplementedStructuralMask) Structure() bool      { return true }
func (m ComplementedStructuralMask) Value() bool          { return false }
func (m ComplementedStructuralMask) Invert() Mask         { return StructuralMask{m.M} }
func (m ComplementedStructuralMask) parent() Maskable     { return m.M }
func (m ComplementedStructuralMask) descValue() DescValue { return DescCompStructure }

// ComplementedValueMask selects output entries wherever the mask has no
// stored entry or a stored entry whose value is falsy.
type ComplementedValueMask struct {
	M Maskable
}

func (m ComplementedValueMask) Complement() bool     { return true }
func (m ComplementedValueMask) Structure() bool      { return false }
func (m ComplementedValueMask) Value() bool          { return true }
func (m ComplementedValueMask) Invert() Mask         { return ValueMask{m.M} }
func (m ComplementedValueMask) parent() Maskable     { return m.M }
func (m ComplementedValueMask) descValue() DescValue { return DescComp }

// maskArgs resolves a mask into the handle and descriptor setting passed to
// the native call. A nil mask means no masking.
func maskArgs(mask Mask) (uintptr, DescValue) {
	if mask == nil {
		return 0, DescDefault
	}
	return mask.parent().maskHandle(), mask.descValue()
}
