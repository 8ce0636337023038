package grb

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	mu          sync.Mutex
	initialized bool
	libHandle   uintptr
	libPath     string
	api         *libAPI
)

// libAPI holds the registered native entry points. Populated once during
// Initialize and read under mu afterwards.
type libAPI struct {
	init       func(mode int32) int32
	finalize   func() int32
	getVersion func(major, minor *uint32) int32

	matrixNew   func(m *uintptr, typ uintptr, nrows, ncols uint64) int32
	matrixDup   func(m *uintptr, src uintptr) int32
	matrixNrows func(n *uint64, m uintptr) int32
	matrixNcols func(n *uint64, m uintptr) int32
	matrixNvals func(n *uint64, m uintptr) int32
	matrixFree  func(m *uintptr) int32
	matrixError func(msg *uintptr, m uintptr) int32

	matrixBuildFP64          func(m uintptr, rows, cols *uint64, vals *float64, n uint64, dup uintptr) int32
	matrixExtractTuplesFP64  func(rows, cols *uint64, vals *float64, n *uint64, m uintptr) int32
	matrixSetElementFP64     func(m uintptr, x float64, i, j uint64) int32
	matrixExtractElementFP64 func(x *float64, m uintptr, i, j uint64) int32
	matrixSplit              func(tiles *uintptr, m, n uint64, tileNrows, tileNcols *uint64, a uintptr, desc uintptr) int32

	vectorNew   func(v *uintptr, typ uintptr, size uint64) int32
	vectorSize  func(n *uint64, v uintptr) int32
	vectorNvals func(n *uint64, v uintptr) int32
	vectorFree  func(v *uintptr) int32
	vectorError func(msg *uintptr, v uintptr) int32

	vectorBuildFP64          func(v uintptr, indices *uint64, vals *float64, n uint64, dup uintptr) int32
	vectorExtractTuplesFP64  func(indices *uint64, vals *float64, n *uint64, v uintptr) int32
	vectorSetElementFP64     func(v uintptr, x float64, i uint64) int32
	vectorExtractElementFP64 func(x *float64, v uintptr, i uint64) int32

	descriptorNew  func(d *uintptr) int32
	descriptorSet  func(d uintptr, field, value int32) int32
	descriptorFree func(d *uintptr) int32

	mxm func(c, mask, accum, semiring, a, b, desc uintptr) int32

	// Predefined global objects, read after GrB_init.
	typeHandles   [Float64 + 1]uintptr
	plusTimesFP64 uintptr
	secondFP64    uintptr
}

// InitOption configures Initialize.
type InitOption func(*initConfig) error

type initConfig struct {
	path string
	mode Mode
}

// WithLibraryPath forces Initialize to load the GraphBLAS shared library
// from an explicit path.
func WithLibraryPath(path string) InitOption {
	return func(cfg *initConfig) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("library path cannot be empty")
		}
		cfg.path = path
		return nil
	}
}

// WithMode selects the GrB_init execution mode. The default is non-blocking.
func WithMode(mode Mode) InitOption {
	return func(cfg *initConfig) error {
		if mode != ModeBlocking && mode != ModeNonBlocking {
			return fmt.Errorf("unknown mode: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// SetSharedLibraryPath sets the path to the GraphBLAS shared library used by
// the next Initialize call.
func SetSharedLibraryPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	libPath = path
}

// IsInitialized returns true if the library has been initialized.
func IsInitialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return initialized
}

// Initialize loads the GraphBLAS shared library, binds its symbols, and calls
// GrB_init. It is safe to call more than once; subsequent calls are no-ops.
func Initialize(opts ...InitOption) error {
	cfg := initConfig{mode: ModeNonBlocking}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return err
		}
	}

	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}

	path := cfg.path
	if path == "" {
		path = libPath
	}
	if path == "" {
		path = strings.TrimSpace(os.Getenv("GRAPHBLAS_LIB_PATH"))
	}
	if path == "" {
		return fmt.Errorf("no GraphBLAS shared library path set; use WithLibraryPath, SetSharedLibraryPath, GRAPHBLAS_LIB_PATH, or EnsureGraphBLASSharedLibrary")
	}

	handle, err := loadLibrary(path)
	if err != nil || handle == 0 {
		return fmt.Errorf("failed to load GraphBLAS shared library %q: %w", path, err)
	}

	bound, err := bindSymbols(handle)
	if err != nil {
		_ = closeLibrary(handle)
		return err
	}

	if info := Info(bound.init(int32(cfg.mode))); info != InfoSuccess {
		_ = closeLibrary(handle)
		return apiError("GrB_init", info)
	}

	if err := bound.loadGlobals(handle); err != nil {
		_ = bound.finalize()
		_ = closeLibrary(handle)
		return err
	}

	var major, minor uint32
	if info := Info(bound.getVersion(&major, &minor)); info != InfoSuccess {
		_ = bound.finalize()
		_ = closeLibrary(handle)
		return apiError("GrB_getVersion", info)
	}
	if int(major) < GrBVersion {
		_ = bound.finalize()
		_ = closeLibrary(handle)
		return fmt.Errorf("library %q implements GraphBLAS C API %d.%d; need at least %d.0", path, major, minor, GrBVersion)
	}

	libHandle = handle
	libPath = path
	api = bound
	initialized = true
	return nil
}

// Finalize calls GrB_finalize and unloads the shared library. No GraphBLAS
// object may be used after Finalize.
func Finalize() error {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		return nil
	}

	var err error
	if info := Info(api.finalize()); info != InfoSuccess {
		err = apiError("GrB_finalize", info)
	}

	if closeErr := closeLibrary(libHandle); closeErr != nil && err == nil {
		err = closeErr
	}

	libHandle = 0
	api = nil
	initialized = false
	return err
}

// Version returns the implemented GraphBLAS C API version as (major, minor).
func Version() (int, int, error) {
	mu.Lock()
	defer mu.Unlock()

	if !initialized {
		return 0, 0, errNotInitialized
	}

	var major, minor uint32
	if info := Info(api.getVersion(&major, &minor)); info != InfoSuccess {
		return 0, 0, apiError("GrB_getVersion", info)
	}
	return int(major), int(minor), nil
}

// resolveSymbol looks up a native symbol, falling back from the GrB_ prefix
// to the GxB_ extension prefix for symbols only provided as extensions.
func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	addr, err := getSymbol(handle, name)
	if err == nil && addr != 0 {
		return addr, nil
	}
	if strings.HasPrefix(name, "GrB_") {
		extName := "GxB_" + name[len("GrB_"):]
		if extAddr, extErr := getSymbol(handle, extName); extErr == nil && extAddr != 0 {
			return extAddr, nil
		}
	}
	if err != nil {
		return 0, fmt.Errorf("symbol %s not found in GraphBLAS library: %w", name, err)
	}
	return 0, fmt.Errorf("symbol %s not found in GraphBLAS library", name)
}

// registerFunc binds fptr (a pointer to a Go func variable) to the named
// native symbol.
func registerFunc(fptr any, handle uintptr, name string) error {
	addr, err := resolveSymbol(handle, name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fptr, addr)
	return nil
}

func bindSymbols(handle uintptr) (*libAPI, error) {
	a := &libAPI{}

	bindings := []struct {
		fptr any
		name string
	}{
		{&a.init, "GrB_init"},
		{&a.finalize, "GrB_finalize"},
		{&a.getVersion, "GrB_getVersion"},

		{&a.matrixNew, "GrB_Matrix_new"},
		{&a.matrixDup, "GrB_Matrix_dup"},
		{&a.matrixNrows, "GrB_Matrix_nrows"},
		{&a.matrixNcols, "GrB_Matrix_ncols"},
		{&a.matrixNvals, "GrB_Matrix_nvals"},
		{&a.matrixFree, "GrB_Matrix_free"},
		{&a.matrixError, "GrB_Matrix_error"},

		{&a.matrixBuildFP64, "GrB_Matrix_build_FP64"},
		{&a.matrixExtractTuplesFP64, "GrB_Matrix_extractTuples_FP64"},
		{&a.matrixSetElementFP64, "GrB_Matrix_setElement_FP64"},
		{&a.matrixExtractElementFP64, "GrB_Matrix_extractElement_FP64"},
		// Split is a SuiteSparse extension; resolveSymbol falls back to GxB_.
		{&a.matrixSplit, "GrB_Matrix_split"},

		{&a.vectorNew, "GrB_Vector_new"},
		{&a.vectorSize, "GrB_Vector_size"},
		{&a.vectorNvals, "GrB_Vector_nvals"},
		{&a.vectorFree, "GrB_Vector_free"},
		{&a.vectorError, "GrB_Vector_error"},

		{&a.vectorBuildFP64, "GrB_Vector_build_FP64"},
		{&a.vectorExtractTuplesFP64, "GrB_Vector_extractTuples_FP64"},
		{&a.vectorSetElementFP64, "GrB_Vector_setElement_FP64"},
		{&a.vectorExtractElementFP64, "GrB_Vector_extractElement_FP64"},

		{&a.descriptorNew, "GrB_Descriptor_new"},
		{&a.descriptorSet, "GrB_Descriptor_set"},
		{&a.descriptorFree, "GrB_Descriptor_free"},

		{&a.mxm, "GrB_mxm"},
	}

	for _, b := range bindings {
		if err := registerFunc(b.fptr, handle, b.name); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// loadGlobals reads the library's predefined object handles. These are
// exported global variables, so the symbol address must be dereferenced to
// obtain the handle value. Only valid after GrB_init.
func (a *libAPI) loadGlobals(handle uintptr) error {
	readGlobal := func(name string) (uintptr, error) {
		addr, err := resolveSymbol(handle, name)
		if err != nil {
			return 0, err
		}
		return *(*uintptr)(unsafe.Pointer(addr)), nil
	}

	for d := Bool; d <= Float64; d++ {
		h, err := readGlobal(d.symbol())
		if err != nil {
			return err
		}
		a.typeHandles[d] = h
	}

	var err error
	if a.plusTimesFP64, err = readGlobal("GrB_PLUS_TIMES_SEMIRING_FP64"); err != nil {
		return err
	}
	if a.secondFP64, err = readGlobal("GrB_SECOND_FP64"); err != nil {
		return err
	}
	return nil
}

// apiUnderLock returns the bound API, which callers must use while holding mu.
func apiUnderLock() (*libAPI, error) {
	if !initialized || api == nil {
		return nil, errNotInitialized
	}
	return api, nil
}
