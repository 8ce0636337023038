package main

import (
	"fmt"
	"os"

	"github.com/Transurgeon/go-graphblas/grb"
)

func main() {
	err := NewRootCmd().Execute()

	finalizeErr := grb.Finalize()
	if finalizeErr != nil && err == nil {
		err = finalizeErr
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
