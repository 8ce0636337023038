//go:build !windows

package grb

import (
	"github.com/ebitengine/purego"
)

// loadLibrary opens the GraphBLAS shared object. RTLD_NOW resolves every
// GrB_ entry point eagerly so a truncated or mismatched build fails here
// rather than mid-operation.
func loadLibrary(path string) (uintptr, error) {
	libHandle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil || libHandle == 0 {
		return 0, err
	}
	return libHandle, nil
}

// getSymbol resolves a GraphBLAS symbol. Besides functions this is also used
// for predefined data objects such as GrB_FP64, whose addresses are
// dereferenced after GrB_init.
func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}
