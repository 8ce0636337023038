package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Transurgeon/go-graphblas/grb"
	"github.com/spf13/cobra"
)

func newSplitCmd() *cobra.Command {
	var (
		shapeSpec string
		chunkSpec string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Normalize a chunk specification against a shape",
		Long: `Normalize a chunk specification against a collection shape and print
the resulting per-dimension partitions.

The chunk specification is a comma separated list with one entry per
dimension. Each entry is a chunk size, an underscore to take the whole
dimension, or a parenthesized list of explicit sizes where a single
underscore absorbs the remainder:

  grb split --shape 10,20 --chunks "5,(5,_)"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			shape, err := grb.ParseShape(shapeSpec)
			if err != nil {
				return err
			}
			chunks, err := parseChunkSpec(chunkSpec)
			if err != nil {
				return err
			}
			normalized, err := grb.NormalizeChunks(chunks, shape)
			if err != nil {
				return err
			}
			slog.Debug("normalized chunks", "shape", shapeSpec, "chunks", chunkSpec)
			for dim, sizes := range normalized {
				fmt.Printf("dim %d: %s\n", dim, formatSizes(sizes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shapeSpec, "shape", "", "Collection shape, e.g. 10,20")
	cmd.Flags().StringVar(&chunkSpec, "chunks", "", "Chunk specification, e.g. \"5,(5,_)\"")
	_ = cmd.MarkFlagRequired("shape")
	_ = cmd.MarkFlagRequired("chunks")

	return cmd
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// parseChunkSpec turns the command line chunk grammar into the value
// accepted by grb.NormalizeChunks. Top level entries are separated by
// commas outside parentheses; "_" stands for nil and "(...)" holds an
// explicit per-dimension list.
func parseChunkSpec(raw string) (any, error) {
	entries, err := splitTopLevel(raw)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		value, err := parseChunkEntry(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

func parseChunkEntry(entry string) (any, error) {
	entry = strings.TrimSpace(entry)
	switch {
	case entry == "":
		return nil, fmt.Errorf("empty chunk entry")
	case entry == "_":
		return nil, nil
	case strings.HasPrefix(entry, "("):
		if !strings.HasSuffix(entry, ")") {
			return nil, fmt.Errorf("unbalanced parentheses in chunk entry %q", entry)
		}
		inner := entry[1 : len(entry)-1]
		items := make([]any, 0, 4)
		if strings.TrimSpace(inner) != "" {
			for _, piece := range strings.Split(inner, ",") {
				piece = strings.TrimSpace(piece)
				if piece == "_" {
					items = append(items, nil)
					continue
				}
				n, err := strconv.Atoi(piece)
				if err != nil {
					return nil, fmt.Errorf("invalid chunk size %q", piece)
				}
				items = append(items, n)
			}
		}
		return items, nil
	default:
		n, err := strconv.Atoi(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid chunk entry %q", entry)
		}
		return n, nil
	}
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(raw string) ([]string, error) {
	var (
		entries []string
		depth   int
		start   int
	)
	for i, r := range raw {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", raw)
			}
		case ',':
			if depth == 0 {
				entries = append(entries, raw[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", raw)
	}
	entries = append(entries, raw[start:])
	return entries, nil
}
