package main

import (
	"fmt"

	"github.com/Transurgeon/go-graphblas/grb"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of the loaded GraphBLAS implementation",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := grb.InitializeWithBootstrap(bootstrapOptions(activeCfg)...); err != nil {
				return err
			}
			major, minor, err := grb.Version()
			if err != nil {
				return err
			}
			fmt.Printf("GraphBLAS %d.%d\n", major, minor)
			return nil
		},
	}
}
