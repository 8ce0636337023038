package grb

import (
	"fmt"
	"runtime"
	"unsafe"
)

// Matrix wraps an opaque GrB_Matrix handle.
// Thread-safe for reads; Destroy must not race with other method calls on
// the same matrix.
type Matrix struct {
	handle uintptr // Pointer to GrB_Matrix
	dtype  DType
}

// NewMatrix creates an empty nrows-by-ncols matrix of the given type.
func NewMatrix(dtype DType, nrows, ncols int) (*Matrix, error) {
	if nrows < 0 || ncols < 0 {
		return nil, valueErrorf("matrix dimensions must be non-negative; got: %d x %d", nrows, ncols)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, err
	}

	var handle uintptr
	if info := Info(a.matrixNew(&handle, a.typeHandles[dtype], uint64(nrows), uint64(ncols))); info != InfoSuccess {
		return nil, apiError("GrB_Matrix_new", info)
	}

	return wrapMatrix(handle, dtype), nil
}

func wrapMatrix(handle uintptr, dtype DType) *Matrix {
	m := &Matrix{handle: handle, dtype: dtype}

	// Finalizer is a safety net to avoid leaking the GrB_Matrix if callers
	// forget Destroy().
	runtime.SetFinalizer(m, func(m *Matrix) {
		_ = m.Destroy()
	})
	return m
}

// Destroy releases the underlying GrB_Matrix. After Destroy the matrix must
// not be used. Calling on a nil or already-destroyed receiver is a no-op.
func (m *Matrix) Destroy() error {
	if m == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if m.handle == 0 {
		return nil
	}

	handle := m.handle
	m.handle = 0
	runtime.SetFinalizer(m, nil)

	if !initialized || api == nil {
		// Library already finalized; the native object is gone with it.
		return nil
	}
	if info := Info(api.matrixFree(&handle)); info != InfoSuccess {
		return apiError("GrB_Matrix_free", info)
	}
	return nil
}

// DType returns the matrix element type.
func (m *Matrix) DType() DType {
	if m == nil {
		return Bool
	}
	return m.dtype
}

func (m *Matrix) maskHandle() uintptr {
	if m == nil {
		return 0
	}
	return m.handle
}

// S returns a structural mask view of the matrix.
func (m *Matrix) S() StructuralMask {
	return StructuralMask{M: m}
}

// V returns a value mask view of the matrix.
func (m *Matrix) V() ValueMask {
	return ValueMask{M: m}
}

// query runs one of the uint64-out native queries under the package lock.
func (m *Matrix) query(op string, fn func(a *libAPI, n *uint64, h uintptr) int32) (int, error) {
	if m == nil || m.handle == 0 {
		return 0, fmt.Errorf("matrix is destroyed or nil")
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return 0, err
	}

	var n uint64
	if info := Info(fn(a, &n, m.handle)); info != InfoSuccess {
		return 0, m.wrapError(a, op, info)
	}
	return int(n), nil
}

// Nrows returns the number of rows.
func (m *Matrix) Nrows() (int, error) {
	return m.query("GrB_Matrix_nrows", func(a *libAPI, n *uint64, h uintptr) int32 {
		return a.matrixNrows(n, h)
	})
}

// Ncols returns the number of columns.
func (m *Matrix) Ncols() (int, error) {
	return m.query("GrB_Matrix_ncols", func(a *libAPI, n *uint64, h uintptr) int32 {
		return a.matrixNcols(n, h)
	})
}

// Nvals returns the number of stored entries.
func (m *Matrix) Nvals() (int, error) {
	return m.query("GrB_Matrix_nvals", func(a *libAPI, n *uint64, h uintptr) int32 {
		return a.matrixNvals(n, h)
	})
}

// Shape returns the matrix dimensions as a two-element shape.
func (m *Matrix) Shape() (Shape, error) {
	nrows, err := m.Nrows()
	if err != nil {
		return nil, err
	}
	ncols, err := m.Ncols()
	if err != nil {
		return nil, err
	}
	return Shape{nrows, ncols}, nil
}

// Dup returns a deep copy of the matrix.
func (m *Matrix) Dup() (*Matrix, error) {
	if m == nil || m.handle == 0 {
		return nil, fmt.Errorf("matrix is destroyed or nil")
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, err
	}

	var handle uintptr
	if info := Info(a.matrixDup(&handle, m.handle)); info != InfoSuccess {
		return nil, m.wrapError(a, "GrB_Matrix_dup", info)
	}
	return wrapMatrix(handle, m.dtype), nil
}

// SetElement stores value at (row, col), overwriting any existing entry.
func (m *Matrix) SetElement(value float64, row, col int) error {
	if m == nil || m.handle == 0 {
		return fmt.Errorf("matrix is destroyed or nil")
	}
	if row < 0 || col < 0 {
		return valueErrorf("matrix indices must be non-negative; got: (%d, %d)", row, col)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return err
	}

	if info := Info(a.matrixSetElementFP64(m.handle, value, uint64(row), uint64(col))); info != InfoSuccess {
		return m.wrapError(a, "GrB_Matrix_setElement_FP64", info)
	}
	return nil
}

// ExtractElement reads the entry at (row, col). The second return is false
// when no entry is stored there.
func (m *Matrix) ExtractElement(row, col int) (float64, bool, error) {
	if m == nil || m.handle == 0 {
		return 0, false, fmt.Errorf("matrix is destroyed or nil")
	}
	if row < 0 || col < 0 {
		return 0, false, valueErrorf("matrix indices must be non-negative; got: (%d, %d)", row, col)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return 0, false, err
	}

	var x float64
	info := Info(a.matrixExtractElementFP64(&x, m.handle, uint64(row), uint64(col)))
	if info == InfoNoValue {
		return 0, false, nil
	}
	if info != InfoSuccess {
		return 0, false, m.wrapError(a, "GrB_Matrix_extractElement_FP64", info)
	}
	return x, true, nil
}

// Build loads (row, col, value) tuples into an empty matrix in one native
// call. Duplicate indices keep the last value given.
func (m *Matrix) Build(rows, cols []int, values []float64) error {
	if m == nil || m.handle == 0 {
		return fmt.Errorf("matrix is destroyed or nil")
	}
	if len(rows) != len(cols) || len(rows) != len(values) {
		return valueErrorf("rows, cols, and values must have equal length; got: %d, %d, %d",
			len(rows), len(cols), len(values))
	}
	if len(rows) == 0 {
		return nil
	}

	rowBuf, err := indexBuffer(rows, "rows")
	if err != nil {
		return err
	}
	colBuf, err := indexBuffer(cols, "cols")
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
	pinner.Pin(unsafe.SliceData(rowBuf))
	pinner.Pin(unsafe.SliceData(colBuf))
	pinner.Pin(unsafe.SliceData(values))
	defer pinner.Unpin()

	info := Info(a.matrixBuildFP64(
		m.handle,
		unsafe.SliceData(rowBuf),
		unsafe.SliceData(colBuf),
		unsafe.SliceData(values),
		uint64(len(values)),
		a.secondFP64,
	))
	if info != InfoSuccess {
		return m.wrapError(a, "GrB_Matrix_build_FP64", info)
	}
	return nil
}

// ExtractTuples returns all stored entries as parallel (row, col, value)
// slices.
func (m *Matrix) ExtractTuples() ([]int, []int, []float64, error) {
	nvals, err := m.Nvals()
	if err != nil {
		return nil, nil, nil, err
	}
	if nvals == 0 {
		return nil, nil, nil, nil
	}

	rowBuf := make([]uint64, nvals)
	colBuf := make([]uint64, nvals)
	values := make([]float64, nvals)

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, nil, nil, err
	}

	var pinner runtime.Pinner
	pinner.Pin(unsafe.SliceData(rowBuf))
	pinner.Pin(unsafe.SliceData(colBuf))
	pinner.Pin(unsafe.SliceData(values))
	defer pinner.Unpin()

	n := uint64(nvals)
	info := Info(a.matrixExtractTuplesFP64(
		unsafe.SliceData(rowBuf),
		unsafe.SliceData(colBuf),
		unsafe.SliceData(values),
		&n,
		m.handle,
	))
	if info != InfoSuccess {
		return nil, nil, nil, m.wrapError(a, "GrB_Matrix_extractTuples_FP64", info)
	}

	rows := make([]int, n)
	cols := make([]int, n)
	for i := uint64(0); i < n; i++ {
		rows[i] = int(rowBuf[i])
		cols[i] = int(colBuf[i])
	}
	return rows, cols, values[:n], nil
}

// Split partitions the matrix into tiles. chunks follows the forms accepted
// by NormalizeChunks; the returned grid has one row of tiles per row
// partition and one tile per column partition.
func (m *Matrix) Split(chunks any) ([][]*Matrix, error) {
	shape, err := m.Shape()
	if err != nil {
		return nil, err
	}

	chunksizes, err := NormalizeChunks(chunks, shape)
	if err != nil {
		return nil, err
	}

	tileNrows := make([]uint64, len(chunksizes[0]))
	for i, c := range chunksizes[0] {
		tileNrows[i] = uint64(c)
	}
	tileNcols := make([]uint64, len(chunksizes[1]))
	for i, c := range chunksizes[1] {
		tileNcols[i] = uint64(c)
	}

	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, err
	}

	tiles := make([]uintptr, len(tileNrows)*len(tileNcols))

	var pinner runtime.Pinner
	pinner.Pin(unsafe.SliceData(tiles))
	pinner.Pin(unsafe.SliceData(tileNrows))
	pinner.Pin(unsafe.SliceData(tileNcols))
	defer pinner.Unpin()

	info := Info(a.matrixSplit(
		unsafe.SliceData(tiles),
		uint64(len(tileNrows)),
		uint64(len(tileNcols)),
		unsafe.SliceData(tileNrows),
		unsafe.SliceData(tileNcols),
		m.handle,
		0,
	))
	if info != InfoSuccess {
		return nil, m.wrapError(a, "GxB_Matrix_split", info)
	}

	grid := make([][]*Matrix, len(tileNrows))
	for i := range grid {
		row := make([]*Matrix, len(tileNcols))
		for j := range row {
			row[j] = wrapMatrix(tiles[i*len(tileNcols)+j], m.dtype)
		}
		grid[i] = row
	}
	return grid, nil
}

// wrapError attaches the library's stored error string for this matrix to a
// non-success return code. Callers must hold mu.
func (m *Matrix) wrapError(a *libAPI, op string, info Info) error {
	var cmsg uintptr
	msg := ""
	if a.matrixError(&cmsg, m.handle) == int32(InfoSuccess) {
		msg = CstringToGo(cmsg)
	}
	return &APIError{Info: info, Op: op, Msg: msg}
}

// indexBuffer converts non-negative Go indices to the native index type.
func indexBuffer(indices []int, name string) ([]uint64, error) {
	buf := make([]uint64, len(indices))
	for i, idx := range indices {
		if idx < 0 {
			return nil, valueErrorf("%s must be non-negative integers; got: %d", name, idx)
		}
		buf[i] = uint64(idx)
	}
	return buf, nil
}

// MxM computes out = a * b with the conventional plus-times semiring,
// honoring mask when one is given. out must be shaped nrows(a) x ncols(b).
func MxM(out *Matrix, mask Mask, a, b *Matrix) error {
	if out == nil || a == nil || b == nil {
		return fmt.Errorf("output and input matrices must be non-nil")
	}

	maskHandle, maskDesc := maskArgs(mask)

	var desc *Descriptor
	if maskDesc != DescDefault {
		d, err := NewDescriptor()
		if err != nil {
			return err
		}
		defer func() {
			_ = d.Destroy()
		}()
		if err := d.Set(DescFieldMask, maskDesc); err != nil {
			return err
		}
		desc = d
	}

	mu.Lock()
	defer mu.Unlock()

	lib, err := apiUnderLock()
	if err != nil {
		return err
	}

	var descHandle uintptr
	if desc != nil {
		descHandle = desc.handle
	}

	info := Info(lib.mxm(out.handle, maskHandle, 0, lib.plusTimesFP64, a.handle, b.handle, descHandle))
	if info != InfoSuccess {
		return out.wrapError(lib, "GrB_mxm", info)
	}
	return nil
}
