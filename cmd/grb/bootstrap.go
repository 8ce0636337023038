package main

import (
	"fmt"
	"log/slog"

	"github.com/Transurgeon/go-graphblas/grb"
	"github.com/Transurgeon/go-graphblas/internal/config"
	"github.com/spf13/cobra"
)

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Ensure the GraphBLAS shared library is available locally",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := grb.EnsureGraphBLASSharedLibrary(bootstrapOptions(activeCfg)...)
			if err != nil {
				return err
			}
			slog.Info("shared library ready", "path", path)
			fmt.Println(path)
			return nil
		},
	}
}

// bootstrapOptions translates the loaded configuration into bootstrap options.
func bootstrapOptions(cfg config.Config) []grb.BootstrapOption {
	var opts []grb.BootstrapOption
	if cfg.Library.Path != "" {
		opts = append(opts, grb.WithBootstrapLibraryPath(cfg.Library.Path))
	}
	if cfg.Library.Version != "" {
		opts = append(opts, grb.WithBootstrapVersion(cfg.Library.Version))
	}
	if cfg.Library.CacheDir != "" {
		opts = append(opts, grb.WithBootstrapCacheDir(cfg.Library.CacheDir))
	}
	if cfg.Library.DisableDownload {
		opts = append(opts, grb.WithBootstrapDisableDownload(true))
	}
	return opts
}
