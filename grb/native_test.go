package grb

import (
	"os"
	"reflect"
	"testing"
)

// setupTestLibrary initializes GraphBLAS from GRAPHBLAS_LIB_PATH and returns
// a cleanup that finalizes it. Tests that need the native library call this
// first and skip when no library is available.
func setupTestLibrary(t *testing.T) func() {
	t.Helper()

	libPath := os.Getenv("GRAPHBLAS_LIB_PATH")
	if libPath == "" {
		t.Skip("GRAPHBLAS_LIB_PATH not set, skipping test")
	}

	if err := Initialize(WithLibraryPath(libPath)); err != nil {
		t.Fatalf("Failed to initialize GraphBLAS: %v", err)
	}

	return func() {
		if err := Finalize(); err != nil {
			t.Errorf("Failed to finalize GraphBLAS: %v", err)
		}
	}
}

func TestMatrixBuildExtractTuplesWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 3, 4)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	rows := []int{0, 1, 2}
	cols := []int{0, 2, 3}
	vals := []float64{1.5, 2.5, 3.5}
	if err := m.Build(rows, cols, vals); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	nvals, err := m.Nvals()
	if err != nil {
		t.Fatalf("Nvals failed: %v", err)
	}
	if nvals != 3 {
		t.Fatalf("Nvals = %d, want 3", nvals)
	}

	gotRows, gotCols, gotVals, err := m.ExtractTuples()
	if err != nil {
		t.Fatalf("ExtractTuples failed: %v", err)
	}
	if !reflect.DeepEqual(gotRows, rows) || !reflect.DeepEqual(gotCols, cols) {
		t.Fatalf("indices = (%v, %v), want (%v, %v)", gotRows, gotCols, rows, cols)
	}
	if !reflect.DeepEqual(gotVals, vals) {
		t.Fatalf("values = %v, want %v", gotVals, vals)
	}
}

func TestMatrixBuildValidationWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	if err := m.Build([]int{0, 1}, []int{0}, []float64{1}); err == nil {
		t.Error("Build accepted mismatched slice lengths")
	}
	if err := m.Build([]int{-1}, []int{0}, []float64{1}); err == nil {
		t.Error("Build accepted a negative row index")
	}
}

func TestMatrixSetExtractElementWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	if err := m.SetElement(4.5, 1, 0); err != nil {
		t.Fatalf("SetElement failed: %v", err)
	}

	x, ok, err := m.ExtractElement(1, 0)
	if err != nil {
		t.Fatalf("ExtractElement failed: %v", err)
	}
	if !ok || x != 4.5 {
		t.Fatalf("ExtractElement = (%v, %v), want (4.5, true)", x, ok)
	}

	_, ok, err = m.ExtractElement(0, 1)
	if err != nil {
		t.Fatalf("ExtractElement on empty cell failed: %v", err)
	}
	if ok {
		t.Fatal("ExtractElement reported a value for an empty cell")
	}
}

func TestMatrixDupWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	if err := m.SetElement(7, 0, 1); err != nil {
		t.Fatalf("SetElement failed: %v", err)
	}

	dup, err := m.Dup()
	if err != nil {
		t.Fatalf("Dup failed: %v", err)
	}
	defer dup.Destroy()

	x, ok, err := dup.ExtractElement(0, 1)
	if err != nil {
		t.Fatalf("ExtractElement on dup failed: %v", err)
	}
	if !ok || x != 7 {
		t.Fatalf("dup entry = (%v, %v), want (7, true)", x, ok)
	}

	// Mutating the duplicate must not touch the source.
	if err := dup.SetElement(8, 1, 1); err != nil {
		t.Fatalf("SetElement on dup failed: %v", err)
	}
	_, ok, err = m.ExtractElement(1, 1)
	if err != nil {
		t.Fatalf("ExtractElement on source failed: %v", err)
	}
	if ok {
		t.Fatal("mutation of the duplicate leaked into the source")
	}
}

func TestMatrixSplitWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 4, 6)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	rows := []int{0, 1, 2, 3}
	cols := []int{0, 2, 4, 5}
	vals := []float64{1, 2, 3, 4}
	if err := m.Build(rows, cols, vals); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tiles, err := m.Split([]any{2, 3})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	defer func() {
		for _, row := range tiles {
			for _, tile := range row {
				tile.Destroy()
			}
		}
	}()

	if len(tiles) != 2 || len(tiles[0]) != 2 {
		t.Fatalf("tile grid = %dx%d, want 2x2", len(tiles), len(tiles[0]))
	}

	wantShapes := [][]Shape{
		{{2, 3}, {2, 3}},
		{{2, 3}, {2, 3}},
	}
	wantNvals := [][]int{
		{1, 0},
		{0, 3},
	}
	for i, row := range tiles {
		for j, tile := range row {
			shape, err := tile.Shape()
			if err != nil {
				t.Fatalf("tile[%d][%d] Shape failed: %v", i, j, err)
			}
			if !reflect.DeepEqual(shape, wantShapes[i][j]) {
				t.Errorf("tile[%d][%d] shape = %v, want %v", i, j, shape, wantShapes[i][j])
			}
			nvals, err := tile.Nvals()
			if err != nil {
				t.Fatalf("tile[%d][%d] Nvals failed: %v", i, j, err)
			}
			if nvals != wantNvals[i][j] {
				t.Errorf("tile[%d][%d] nvals = %d, want %d", i, j, nvals, wantNvals[i][j])
			}
		}
	}
}

func TestMatrixSplitUnevenWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	m, err := NewMatrix(Float64, 10, 20)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer m.Destroy()

	// 5,(5,_) partitions rows as (5, 5) and columns as (5, 15).
	tiles, err := m.Split([]any{5, []any{5, nil}})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	defer func() {
		for _, row := range tiles {
			for _, tile := range row {
				tile.Destroy()
			}
		}
	}()

	wantCols := []int{5, 15}
	for i, row := range tiles {
		for j, tile := range row {
			shape, err := tile.Shape()
			if err != nil {
				t.Fatalf("tile[%d][%d] Shape failed: %v", i, j, err)
			}
			want := Shape{5, wantCols[j]}
			if !reflect.DeepEqual(shape, want) {
				t.Errorf("tile[%d][%d] shape = %v, want %v", i, j, shape, want)
			}
		}
	}
}

func TestVectorBuildExtractTuplesWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	v, err := NewVector(Float64, 8)
	if err != nil {
		t.Fatalf("NewVector failed: %v", err)
	}
	defer v.Destroy()

	indices := []int{1, 4, 6}
	vals := []float64{0.5, 1.5, 2.5}
	if err := v.Build(indices, vals); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	gotIdx, gotVals, err := v.ExtractTuples()
	if err != nil {
		t.Fatalf("ExtractTuples failed: %v", err)
	}
	if !reflect.DeepEqual(gotIdx, indices) {
		t.Fatalf("indices = %v, want %v", gotIdx, indices)
	}
	if !reflect.DeepEqual(gotVals, vals) {
		t.Fatalf("values = %v, want %v", gotVals, vals)
	}

	if err := v.Build([]int{0, 1}, []float64{1}); err == nil {
		t.Error("Build accepted mismatched slice lengths")
	}
}

func TestMxMWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	a, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer a.Destroy()
	if err := a.Build([]int{0, 0, 1, 1}, []int{0, 1, 0, 1}, []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("Build a failed: %v", err)
	}

	identity, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer identity.Destroy()
	if err := identity.Build([]int{0, 1}, []int{0, 1}, []float64{1, 1}); err != nil {
		t.Fatalf("Build identity failed: %v", err)
	}

	out, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer out.Destroy()

	if err := MxM(out, nil, a, identity); err != nil {
		t.Fatalf("MxM failed: %v", err)
	}

	rows, cols, vals, err := out.ExtractTuples()
	if err != nil {
		t.Fatalf("ExtractTuples failed: %v", err)
	}
	if !reflect.DeepEqual(rows, []int{0, 0, 1, 1}) || !reflect.DeepEqual(cols, []int{0, 1, 0, 1}) {
		t.Fatalf("indices = (%v, %v)", rows, cols)
	}
	if !reflect.DeepEqual(vals, []float64{1, 2, 3, 4}) {
		t.Fatalf("values = %v, want [1 2 3 4]", vals)
	}
}

func TestMxMMaskedWithGraphBLAS(t *testing.T) {
	cleanup := setupTestLibrary(t)
	defer cleanup()

	a, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer a.Destroy()
	if err := a.Build([]int{0, 0, 1, 1}, []int{0, 1, 0, 1}, []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("Build a failed: %v", err)
	}

	identity, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer identity.Destroy()
	if err := identity.Build([]int{0, 1}, []int{0, 1}, []float64{1, 1}); err != nil {
		t.Fatalf("Build identity failed: %v", err)
	}

	// Structural mask keeping only the diagonal of the product.
	maskMat, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer maskMat.Destroy()
	if err := maskMat.Build([]int{0, 1}, []int{0, 1}, []float64{1, 1}); err != nil {
		t.Fatalf("Build mask failed: %v", err)
	}

	out, err := NewMatrix(Float64, 2, 2)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	defer out.Destroy()

	if err := MxM(out, maskMat.S(), a, identity); err != nil {
		t.Fatalf("masked MxM failed: %v", err)
	}

	rows, cols, vals, err := out.ExtractTuples()
	if err != nil {
		t.Fatalf("ExtractTuples failed: %v", err)
	}
	if !reflect.DeepEqual(rows, []int{0, 1}) || !reflect.DeepEqual(cols, []int{0, 1}) {
		t.Fatalf("indices = (%v, %v), want diagonal only", rows, cols)
	}
	if !reflect.DeepEqual(vals, []float64{1, 4}) {
		t.Fatalf("values = %v, want [1 4]", vals)
	}
}
