package grb

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewShape(t *testing.T) {
	tests := []struct {
		name     string
		dims     []int
		expected Shape
	}{
		{"empty shape", []int{}, Shape{}},
		{"1D shape", []int{10}, Shape{10}},
		{"2D shape", []int{3, 4}, Shape{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewShape(tt.dims...)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NewShape() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Shape
		wantErr string
	}{
		{name: "single dimension", raw: "10", want: Shape{10}},
		{name: "two dimensions", raw: "10,20", want: Shape{10, 20}},
		{name: "spaces tolerated", raw: " 3 , 4 ", want: Shape{3, 4}},
		{name: "empty dimension", raw: "10,,20", wantErr: "empty dimension"},
		{name: "non-numeric", raw: "10,x", wantErr: "failed to parse dimension"},
		{name: "negative dimension", raw: "10,-2", wantErr: "negative dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShape(tt.raw)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseShape(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestShapeElementCount(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		want    int
		wantErr bool
	}{
		{name: "empty shape is scalar", shape: Shape{}, want: 1},
		{name: "vector", shape: Shape{10}, want: 10},
		{name: "matrix", shape: Shape{3, 4}, want: 12},
		{name: "zero dimension", shape: Shape{10, 0}, want: 0},
		{name: "negative dimension", shape: Shape{-1, 4}, wantErr: true},
		{name: "overflow", shape: Shape{1 << 40, 1 << 40}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.shape.ElementCount()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ElementCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	rowwise := []string{"c", "C", "row", "rows", "rowwise", "Rowwise", "ROWS"}
	for _, s := range rowwise {
		got, err := ParseOrder(s)
		if err != nil {
			t.Fatalf("ParseOrder(%q) unexpected error: %v", s, err)
		}
		if got != Rowwise {
			t.Errorf("ParseOrder(%q) = %v, want Rowwise", s, got)
		}
	}

	columnwise := []string{"f", "F", "col", "cols", "column", "columns", "colwise", "columnwise", "COLWISE"}
	for _, s := range columnwise {
		got, err := ParseOrder(s)
		if err != nil {
			t.Fatalf("ParseOrder(%q) unexpected error: %v", s, err)
		}
		if got != Columnwise {
			t.Errorf("ParseOrder(%q) = %v, want Columnwise", s, got)
		}
	}

	_, err := ParseOrder("diagonal")
	if err == nil {
		t.Fatal("expected error for unknown order")
	}
	if !errors.Is(err, ErrValue) {
		t.Errorf("error %v is not ErrValue", err)
	}
	if !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("error %q does not name the bad value", err.Error())
	}
}

func TestInferShape(t *testing.T) {
	tests := []struct {
		name      string
		nrows     int
		ncols     int
		arrays    []NamedArray
		wantRows  int
		wantCols  int
		wantErr   bool
		errorsVal bool
	}{
		{
			name:     "both provided",
			nrows:    3,
			ncols:    4,
			wantRows: 3,
			wantCols: 4,
		},
		{
			name:  "both inferred from 2d array",
			nrows: -1, ncols: -1,
			arrays:   []NamedArray{{Name: "values", Shape: Shape{5, 7}}},
			wantRows: 5, wantCols: 7,
		},
		{
			name:  "only ncols inferred",
			nrows: 9, ncols: -1,
			arrays:   []NamedArray{{Name: "values", Shape: Shape{5, 7}}},
			wantRows: 9, wantCols: 7,
		},
		{
			name:  "1d arrays skipped",
			nrows: -1, ncols: -1,
			arrays: []NamedArray{
				{Name: "rows", Shape: Shape{12}},
				{Name: "values", Shape: Shape{2, 6}},
			},
			wantRows: 2, wantCols: 6,
		},
		{
			name:  "no 2d array to infer from",
			nrows: -1, ncols: -1,
			arrays:    []NamedArray{{Name: "rows", Shape: Shape{12}}},
			wantErr:   true,
			errorsVal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nrows, ncols, err := InferShape(tt.nrows, tt.ncols, tt.arrays...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got (%d, %d)", nrows, ncols)
				}
				if tt.errorsVal && !errors.Is(err, ErrValue) {
					t.Errorf("error %v is not ErrValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if nrows != tt.wantRows || ncols != tt.wantCols {
				t.Errorf("InferShape() = (%d, %d), want (%d, %d)", nrows, ncols, tt.wantRows, tt.wantCols)
			}
		})
	}
}
