package grb

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Vector wraps an opaque GrB_Vector handle.
type Vector struct {
	handle uintptr // Pointer to GrB_Vector
	dtype  DType
}

// NewVector creates an empty vector of the given type and size.
func NewVector(dtype DType, size int) (*Vector, error) {
	if size < 0 {
		return nil, valueErrorf("vector size must be non-negative; got: %d", size)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, err
	}

	var handle uintptr
	if info := Info(a.vectorNew(&handle, a.typeHandles[dtype], uint64(size))); info != InfoSuccess {
		return nil, apiError("GrB_Vector_new", info)
	}

	v := &Vector{handle: handle, dtype: dtype}
	runtime.SetFinalizer(v, func(v *Vector) {
		_ = v.Destroy()
	})
	return v, nil
}

// Destroy releases the underlying GrB_Vector. Calling on a nil or
// already-destroyed receiver is a no-op.
func (v *Vector) Destroy() error {
	if v == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if v.handle == 0 {
		return nil
	}

	handle := v.handle
	v.handle = 0
	runtime.SetFinalizer(v, nil)

	if !initialized || api == nil {
		return nil
	}
	if info := Info(api.vectorFree(&handle)); info != InfoSuccess {
		return apiError("GrB_Vector_free", info)
	}
	return nil
}

// DType returns the vector element type.
func (v *Vector) DType() DType {
	if v == nil {
		return Bool
	}
	return v.dtype
}

func (v *Vector) maskHandle() uintptr {
	if v == nil {
		return 0
	}
	return v.handle
}

// S returns a structural mask view of the vector.
func (v *Vector) S() StructuralMask {
	return StructuralMask{M: v}
}

// V returns a value mask view of the vector.
func (v *Vector) V() ValueMask {
	return ValueMask{M: v}
}

func (v *Vector) query(op string, fn func(a *libAPI, n *uint64, h uintptr) int32) (int, error) {
	if v == nil || v.handle == 0 {
		return 0, fmt.Errorf("vector is destroyed or nil")
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return 0, err
	}

	var n uint64
	if info := Info(fn(a, &n, v.handle)); info != InfoSuccess {
		var cmsg uintptr
		msg := ""
		if a.vectorError(&cmsg, v.handle) == int32(InfoSuccess) {
			msg = CstringToGo(cmsg)
		}
		return 0, &APIError{Info: info, Op: op, Msg: msg}
	}
	return int(n), nil
}

// Size returns the vector's dimension.
func (v *Vector) Size() (int, error) {
	return v.query("GrB_Vector_size", func(a *libAPI, n *uint64, h uintptr) int32 {
		return a.vectorSize(n, h)
	})
}

// Nvals returns the number of stored entries.
func (v *Vector) Nvals() (int, error) {
	return v.query("GrB_Vector_nvals", func(a *libAPI, n *uint64, h uintptr) int32 {
		return a.vectorNvals(n, h)
	})
}

// Shape returns the vector's dimension as a one-element shape.
func (v *Vector) Shape() (Shape, error) {
	size, err := v.Size()
	if err != nil {
		return nil, err
	}
	return Shape{size}, nil
}

// SetElement stores value at index i, overwriting any existing entry.
func (v *Vector) SetElement(value float64, i int) error {
	if v == nil || v.handle == 0 {
		return fmt.Errorf("vector is destroyed or nil")
	}
	if i < 0 {
		return valueErrorf("vector index must be non-negative; got: %d", i)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return err
	}

	if info := Info(a.vectorSetElementFP64(v.handle, value, uint64(i))); info != InfoSuccess {
		return apiError("GrB_Vector_setElement_FP64", info)
	}
	return nil
}

// ExtractElement reads the entry at index i. The second return is false when
// no entry is stored there.
func (v *Vector) ExtractElement(i int) (float64, bool, error) {
	if v == nil || v.handle == 0 {
		return 0, false, fmt.Errorf("vector is destroyed or nil")
	}
	if i < 0 {
		return 0, false, valueErrorf("vector index must be non-negative; got: %d", i)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return 0, false, err
	}

	var x float64
	info := Info(a.vectorExtractElementFP64(&x, v.handle, uint64(i)))
	if info == InfoNoValue {
		return 0, false, nil
	}
	if info != InfoSuccess {
		return 0, false, apiError("GrB_Vector_extractElement_FP64", info)
	}
	return x, true, nil
}

// Build loads (index, value) tuples into an empty vector in one native call.
// Duplicate indices keep the last value given.
func (v *Vector) Build(indices []int, values []float64) error {
	if v == nil || v.handle == 0 {
		return fmt.Errorf("vector is destroyed or nil")
	}
	if len(indices) != len(values) {
		return valueErrorf("indices and values must have equal length; got: %d, %d",
			len(indices), len(values))
	}
	if len(indices) == 0 {
		return nil
	}

	idxBuf, err := indexBuffer(indices, "indices")
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return err
	}

	var pinner runtime.Pinner
	pinner.Pin(unsafe.SliceData(idxBuf))
	pinner.Pin(unsafe.SliceData(values))
	defer pinner.Unpin()

	info := Info(a.vectorBuildFP64(
		v.handle,
		unsafe.SliceData(idxBuf),
		unsafe.SliceData(values),
		uint64(len(values)),
		a.secondFP64,
	))
	if info != InfoSuccess {
		return v.wrapError(a, "GrB_Vector_build_FP64", info)
	}
	return nil
}

// ExtractTuples returns all stored entries as parallel (index, value) slices.
func (v *Vector) ExtractTuples() ([]int, []float64, error) {
	nvals, err := v.Nvals()
	if err != nil {
		return nil, nil, err
	}
	if nvals == 0 {
		return nil, nil, nil
	}

	idxBuf := make([]uint64, nvals)
	values := make([]float64, nvals)

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, nil, err
	}

	var pinner runtime.Pinner
	pinner.Pin(unsafe.SliceData(idxBuf))
	pinner.Pin(unsafe.SliceData(values))
	defer pinner.Unpin()

	n := uint64(nvals)
	info := Info(a.vectorExtractTuplesFP64(
		unsafe.SliceData(idxBuf),
		unsafe.SliceData(values),
		&n,
		v.handle,
	))
	if info != InfoSuccess {
		return nil, nil, v.wrapError(a, "GrB_Vector_extractTuples_FP64", info)
	}

	indices := make([]int, n)
	for i := uint64(0); i < n; i++ {
		indices[i] = int(idxBuf[i])
	}
	return indices, values[:n], nil
}

// wrapError attaches the library's stored error string for this vector to a
// non-success return code. Callers must hold mu.
func (v *Vector) wrapError(a *libAPI, op string, info Info) error {
	var cmsg uintptr
	msg := ""
	if a.vectorError(&cmsg, v.handle) == int32(InfoSuccess) {
		msg = CstringToGo(cmsg)
	}
	return &APIError{Info: info, Op: op, Msg: msg}
}
