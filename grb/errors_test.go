package grb

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	typeErr := typeErrorf("got: %T", "x")
	if !errors.Is(typeErr, ErrType) {
		t.Errorf("typeErrorf result is not ErrType: %v", typeErr)
	}
	if errors.Is(typeErr, ErrValue) {
		t.Errorf("typeErrorf result wrongly matches ErrValue: %v", typeErr)
	}

	valueErr := valueErrorf("got: %d", -1)
	if !errors.Is(valueErr, ErrValue) {
		t.Errorf("valueErrorf result is not ErrValue: %v", valueErr)
	}
	if errors.Is(valueErr, ErrType) {
		t.Errorf("valueErrorf result wrongly matches ErrType: %v", valueErr)
	}
}

func TestAPIError(t *testing.T) {
	err := apiError("GrB_Matrix_new", InfoOutOfMemory)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("apiError result is not *APIError: %v", err)
	}
	if apiErr.Info != InfoOutOfMemory {
		t.Errorf("Info = %v, want InfoOutOfMemory", apiErr.Info)
	}
	if !strings.Contains(err.Error(), "GrB_Matrix_new") {
		t.Errorf("error %q does not name the operation", err.Error())
	}
	if !strings.Contains(err.Error(), "GrB_OUT_OF_MEMORY") {
		t.Errorf("error %q does not name the return code", err.Error())
	}

	withMsg := &APIError{Info: InfoInvalidValue, Op: "GrB_mxm", Msg: "dimensions do not match"}
	if !strings.Contains(withMsg.Error(), "dimensions do not match") {
		t.Errorf("error %q does not carry the library message", withMsg.Error())
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{InfoSuccess, "GrB_SUCCESS"},
		{InfoNoValue, "GrB_NO_VALUE"},
		{InfoInvalidValue, "GrB_INVALID_VALUE"},
		{InfoDimensionMismatch, "GrB_DIMENSION_MISMATCH"},
		{InfoPanic, "GrB_PANIC"},
		{Info(12345), "GrB_UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("Info(%d).String() = %q, want %q", tt.info, got, tt.want)
		}
	}
}
