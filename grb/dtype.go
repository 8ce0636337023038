package grb

import "strings"

// DType identifies a GraphBLAS scalar type.
type DType uint8

const (
	Bool DType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// Size returns the byte size of one element of this type.
func (d DType) Size() uintptr {
	switch d {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// String returns the canonical lowercase name for the type.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "fp32"
	case Float64:
		return "fp64"
	default:
		return "unknown"
	}
}

// symbol returns the name of the native type handle exported by the library.
func (d DType) symbol() string {
	switch d {
	case Bool:
		return "GrB_BOOL"
	case Int8:
		return "GrB_INT8"
	case Int16:
		return "GrB_INT16"
	case Int32:
		return "GrB_INT32"
	case Int64:
		return "GrB_INT64"
	case Uint8:
		return "GrB_UINT8"
	case Uint16:
		return "GrB_UINT16"
	case Uint32:
		return "GrB_UINT32"
	case Uint64:
		return "GrB_UINT64"
	case Float32:
		return "GrB_FP32"
	case Float64:
		return "GrB_FP64"
	default:
		return ""
	}
}

// ParseDType normalizes a type name to its canonical DType. Accepted
// spellings include the canonical names, common aliases ("float", "double",
// "float32", "float64"), and the native GrB_* symbol names. Matching ignores
// case.
func ParseDType(name string) (DType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "grb_")
	switch n {
	case "bool":
		return Bool, nil
	case "int8":
		return Int8, nil
	case "int16":
		return Int16, nil
	case "int32", "int":
		return Int32, nil
	case "int64":
		return Int64, nil
	case "uint8":
		return Uint8, nil
	case "uint16":
		return Uint16, nil
	case "uint32", "uint":
		return Uint32, nil
	case "uint64", "index":
		return Uint64, nil
	case "fp32", "float32", "float":
		return Float32, nil
	case "fp64", "float64", "double":
		return Float64, nil
	default:
		return 0, valueErrorf("unknown type name: %q", name)
	}
}
