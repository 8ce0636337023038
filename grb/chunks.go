package grb

import "math"

// NormalizeChunks normalizes a chunks argument into explicit partition sizes,
// one slice per dimension, for use by Matrix.Split.
//
// chunks may be a single chunk size applied to every dimension, or a slice
// with one entry per dimension of shape. A per-dimension entry is one of:
//
//   - nil: the whole dimension is a single chunk;
//   - a chunk size: the dimension is divided into chunks of that size, with a
//     final smaller chunk if the size does not divide evenly;
//   - a slice of explicit chunk sizes, where a single nil entry marks "the
//     rest" and receives whatever size remains unallocated.
//
// Chunk sizes may be any Go integer kind, or a float with a zero fractional
// part. The returned partition sizes always sum to the corresponding shape
// dimension.
//
// Examples, for shape (10, 20):
//
//	NormalizeChunks(10, shape)                        -> [[10] [10 10]]
//	NormalizeChunks([]int{10, 10}, shape)             -> [[10] [10 10]]
//	NormalizeChunks([]any{nil, []int{5, 15}}, shape)  -> [[10] [5 15]]
//	NormalizeChunks([]any{5, []any{5, nil}}, shape)   -> [[5 5] [5 15]]
func NormalizeChunks(chunks any, shape Shape) ([][]int, error) {
	dims, err := chunksPerDimension(chunks, len(shape))
	if err != nil {
		return nil, err
	}
	if len(dims) != len(shape) {
		typ := "Matrix"
		if len(shape) == 1 {
			typ = "Vector"
		}
		return nil, valueErrorf(
			"chunks argument must be of length %d (one for each dimension of a %s)",
			len(shape), typ,
		)
	}

	chunksizes := make([][]int, 0, len(shape))
	for i, size := range shape {
		cur, err := normalizeDimension(dims[i], size)
		if err != nil {
			return nil, err
		}
		chunksizes = append(chunksizes, cur)
	}
	return chunksizes, nil
}

// chunksPerDimension converts the chunks argument into one entry per
// dimension, broadcasting a single chunk size across all ndim dimensions.
func chunksPerDimension(chunks any, ndim int) ([]any, error) {
	if c, ok := asChunkValue(chunks); ok {
		dims := make([]any, ndim)
		for i := range dims {
			dims[i] = c
		}
		return dims, nil
	}

	switch v := chunks.(type) {
	case []any:
		return v, nil
	case []int:
		dims := make([]any, len(v))
		for i, c := range v {
			dims[i] = c
		}
		return dims, nil
	case []int64:
		dims := make([]any, len(v))
		for i, c := range v {
			dims[i] = c
		}
		return dims, nil
	case []float64:
		dims := make([]any, len(v))
		for i, c := range v {
			dims[i] = c
		}
		return dims, nil
	case [][]int:
		dims := make([]any, len(v))
		for i, c := range v {
			dims[i] = c
		}
		return dims, nil
	default:
		return nil, typeErrorf("chunks argument must be a slice or a number; got: %T", chunks)
	}
}

// normalizeDimension expands one dimension's chunk specification into
// explicit partition sizes summing to size.
func normalizeDimension(chunk any, size int) ([]int, error) {
	if chunk == nil {
		return []int{size}, nil
	}

	if c, ok := asChunkValue(chunk); ok {
		return splitEvenly(c, size)
	}

	switch v := chunk.(type) {
	case []any:
		return resolveExplicit(v, size)
	case []int:
		return useDirectly(v, size)
	case []int64:
		sizes := make([]int, len(v))
		for i, c := range v {
			sizes[i] = int(c)
		}
		return useDirectly(sizes, size)
	case []float64, []float32:
		return nil, typeErrorf("numeric slice for chunks must hold integers; got: %T", chunk)
	case [][]int:
		return nil, typeErrorf("numeric slice for chunks must be 1-dimensional; got: %T", chunk)
	default:
		return nil, typeErrorf(
			"chunks for a dimension must be an integer, a slice of integers, or nil; got: %T", chunk)
	}
}

// splitEvenly divides size into chunks of c, with a final remainder chunk
// when c does not divide size.
func splitEvenly(c, size int) ([]int, error) {
	if c <= 0 {
		return nil, valueErrorf("chunksize must be greater than 0; got: %d", c)
	}
	div, mod := size/c, size%c
	cur := make([]int, div, div+1)
	for i := range cur {
		cur[i] = c
	}
	if mod != 0 {
		cur = append(cur, mod)
	}
	return cur, nil
}

// resolveExplicit handles an explicit per-dimension list of chunk sizes. A
// single nil entry receives the unallocated remainder of the dimension.
func resolveExplicit(entries []any, size int) ([]int, error) {
	cur := make([]int, 0, len(entries))
	restIndex := -1
	for _, e := range entries {
		if e == nil {
			if restIndex >= 0 {
				return nil, typeErrorf(
					`nil value in chunks for "the rest" can only appear once per dimension`)
			}
			restIndex = len(cur)
			cur = append(cur, 0)
			continue
		}
		c, ok := asChunkValue(e)
		if !ok {
			return nil, typeErrorf(
				"bad type for element in chunks; expected int or nil, but got: %T", e)
		}
		if c < 0 {
			return nil, valueErrorf("chunksize must be greater than 0; got: %d", c)
		}
		cur = append(cur, c)
	}

	total := 0
	for _, c := range cur {
		total += c
	}
	if restIndex >= 0 {
		fill := size - total
		if fill < 0 {
			return nil, valueErrorf(
				"chunks are too large; the rest value would need to be negative to match the dimension size %d", size)
		}
		cur[restIndex] = fill
	} else if total != size {
		return nil, valueErrorf("explicit chunks must sum to %d; got: %d", size, total)
	}
	return cur, nil
}

// useDirectly validates a flat list of chunk sizes given for one dimension.
func useDirectly(sizes []int, size int) ([]int, error) {
	total := 0
	for _, c := range sizes {
		if c < 0 {
			return nil, valueErrorf("chunksize must be greater than 0; got: %d", c)
		}
		total += c
	}
	if total != size {
		return nil, valueErrorf("explicit chunks must sum to %d; got: %d", size, total)
	}
	cur := make([]int, len(sizes))
	copy(cur, sizes)
	return cur, nil
}

// asChunkValue reports whether v is usable as a single chunk size: any Go
// integer kind, or a float with a zero fractional part.
func asChunkValue(v any) (int, bool) {
	maxInt := int(^uint(0) >> 1)

	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if uint64(n) > uint64(maxInt) {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > uint64(maxInt) {
			return 0, false
		}
		return int(n), true
	case float32:
		return asChunkFloat(float64(n))
	case float64:
		return asChunkFloat(n)
	default:
		return 0, false
	}
}

func asChunkFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	return int(f), true
}
