package grb

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape holds the dimension sizes of a Vector (length 1) or Matrix (length 2).
type Shape []int

// NewShape creates a new shape from dimensions.
func NewShape(dims ...int) Shape {
	return Shape(dims)
}

// ParseShape parses a comma-separated shape string (for example: "10,20").
func ParseShape(raw string) (Shape, error) {
	parts := strings.Split(raw, ",")
	shape := make(Shape, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty dimension")
		}

		dim, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dimension %q: %w", part, err)
		}
		if dim < 0 {
			return nil, fmt.Errorf("negative dimension %d", dim)
		}
		shape = append(shape, dim)
	}

	return shape, nil
}

// ElementCount returns the total element count for the shape.
// Dimensions must be non-negative; zero dimensions produce a count of zero.
func (s Shape) ElementCount() (int, error) {
	maxInt := int(^uint(0) >> 1)

	count := 1
	for i, dim := range s {
		if dim < 0 {
			return 0, fmt.Errorf("invalid shape dimension at index %d: %d (must be >= 0)", i, dim)
		}

		if dim == 0 {
			count = 0
			continue
		}

		if count == 0 {
			continue
		}

		if count > maxInt/dim {
			return 0, fmt.Errorf("shape %v exceeds maximum supported element count", s)
		}

		count *= dim
	}

	return count, nil
}

// Order selects the storage orientation of a matrix.
type Order int

const (
	Rowwise Order = iota
	Columnwise
)

func (o Order) String() string {
	if o == Columnwise {
		return "columnwise"
	}
	return "rowwise"
}

// ParseOrder normalizes an orientation spelling. Accepted rowwise forms are
// "c", "row", "rows", and "rowwise"; columnwise forms are "f", "col", "cols",
// "column", "columns", "colwise", and "columnwise". Matching ignores case.
func ParseOrder(order string) (Order, error) {
	switch strings.ToLower(order) {
	case "c", "row", "rows", "rowwise":
		return Rowwise, nil
	case "f", "col", "cols", "column", "columns", "colwise", "columnwise":
		return Columnwise, nil
	default:
		return 0, valueErrorf(
			`bad value for order: %q; expected "rowwise", "columnwise", "rows", "columns", "C", or "F"`,
			order,
		)
	}
}

// NamedArray pairs an array's name with its shape, for shape inference
// diagnostics.
type NamedArray struct {
	Name  string
	Shape Shape
}

// InferShape fills in missing row and column counts from the first
// two-dimensional array. Pass nrows or ncols as -1 to infer them.
func InferShape(nrows, ncols int, arrays ...NamedArray) (int, int, error) {
	if nrows >= 0 && ncols >= 0 {
		return nrows, ncols, nil
	}

	for _, arr := range arrays {
		if len(arr.Shape) != 2 {
			continue
		}
		if nrows < 0 {
			nrows = arr.Shape[0]
		}
		if ncols < 0 {
			ncols = arr.Shape[1]
		}
		return nrows, ncols, nil
	}

	names := make([]string, 0, len(arrays))
	for _, arr := range arrays {
		names = append(names, arr.Name)
	}
	return 0, 0, valueErrorf(
		"either nrows and ncols must be provided, or one of the following arrays must be 2d (from which to get nrows and ncols): %s",
		strings.Join(names, ", "),
	)
}
