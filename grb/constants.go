package grb

const (
	// GrBVersion is the GraphBLAS C API version this binding targets.
	GrBVersion = 2
)

// Info represents a GraphBLAS return code (GrB_Info in the C API).
type Info int32

const (
	InfoSuccess Info = 0
	InfoNoValue Info = 1
)

// API errors (informative, recoverable).
const (
	InfoUninitializedObject Info = -1
	InfoNullPointer         Info = -2
	InfoInvalidValue        Info = -3
	InfoInvalidIndex        Info = -4
	InfoDomainMismatch      Info = -5
	InfoDimensionMismatch   Info = -6
	InfoOutputNotEmpty      Info = -7
	InfoNotImplemented      Info = -8
)

// Execution errors (unrecoverable for the current operation).
const (
	InfoPanic             Info = -101
	InfoOutOfMemory       Info = -102
	InfoInsufficientSpace Info = -103
	InfoInvalidObject     Info = -104
	InfoIndexOutOfBounds  Info = -105
	InfoEmptyObject       Info = -106
)

// String returns the C API name for the return code.
func (i Info) String() string {
	switch i {
	case InfoSuccess:
		return "GrB_SUCCESS"
	case InfoNoValue:
		return "GrB_NO_VALUE"
	case InfoUninitializedObject:
		return "GrB_UNINITIALIZED_OBJECT"
	case InfoNullPointer:
		return "GrB_NULL_POINTER"
	case InfoInvalidValue:
		return "GrB_INVALID_VALUE"
	case InfoInvalidIndex:
		return "GrB_INVALID_INDEX"
	case InfoDomainMismatch:
		return "GrB_DOMAIN_MISMATCH"
	case InfoDimensionMismatch:
		return "GrB_DIMENSION_MISMATCH"
	case InfoOutputNotEmpty:
		return "GrB_OUTPUT_NOT_EMPTY"
	case InfoNotImplemented:
		return "GrB_NOT_IMPLEMENTED"
	case InfoPanic:
		return "GrB_PANIC"
	case InfoOutOfMemory:
		return "GrB_OUT_OF_MEMORY"
	case InfoInsufficientSpace:
		return "GrB_INSUFFICIENT_SPACE"
	case InfoInvalidObject:
		return "GrB_INVALID_OBJECT"
	case InfoIndexOutOfBounds:
		return "GrB_INDEX_OUT_OF_BOUNDS"
	case InfoEmptyObject:
		return "GrB_EMPTY_OBJECT"
	default:
		return "GrB_UNKNOWN"
	}
}

// Mode selects how GrB_init schedules work (GrB_Mode in the C API).
type Mode int32

const (
	ModeNonBlocking Mode = iota
	ModeBlocking
)

// DescField identifies a descriptor slot (GrB_Desc_Field in the C API).
type DescField int32

const (
	DescFieldOutput DescField = 0 // GrB_OUTP
	DescFieldMask   DescField = 1 // GrB_MASK
	DescFieldInput0 DescField = 2 // GrB_INP0
	DescFieldInput1 DescField = 3 // GrB_INP1
)

// DescValue is a descriptor setting (GrB_Desc_Value in the C API).
type DescValue int32

const (
	DescDefault   DescValue = 0
	DescReplace   DescValue = 1
	DescComp      DescValue = 2
	DescTranspose DescValue = 3
	DescStructure DescValue = 4
	// DescCompStructure is DescComp combined with DescStructure.
	DescCompStructure DescValue = 6
)
