package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Library  LibraryConfig `mapstructure:"library"`
	LogLevel string        `mapstructure:"log_level"`
}

type LibraryConfig struct {
	Path            string `mapstructure:"path"`
	Version         string `mapstructure:"version"`
	CacheDir        string `mapstructure:"cache_dir"`
	DisableDownload bool   `mapstructure:"disable_download"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Library: LibraryConfig{
			Path:            "",
			Version:         "",
			CacheDir:        "",
			DisableDownload: false,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("library-path", defaults.Library.Path, "Path to the GraphBLAS shared library")
	fs.String("library-version", defaults.Library.Version, "SuiteSparse:GraphBLAS version to bootstrap")
	fs.String("library-cache-dir", defaults.Library.CacheDir, "Cache directory for bootstrapped libraries")
	fs.Bool("library-disable-download", defaults.Library.DisableDownload, "Disallow network download during bootstrap")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("GRB")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("library.path", "GRB_LIBRARY_PATH", "GRAPHBLAS_LIB_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind library env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("library.path", defaults.Library.Path)
	v.SetDefault("library.version", defaults.Library.Version)
	v.SetDefault("library.cache_dir", defaults.Library.CacheDir)
	v.SetDefault("library.disable_download", defaults.Library.DisableDownload)
	v.SetDefault("log_level", defaults.LogLevel)
}

// bindFlags binds each dotted config key to its flag. An unchanged flag
// keeps env, file, and default values visible under the dotted key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"library.path":             "library-path",
		"library.version":          "library-version",
		"library.cache_dir":        "library-cache-dir",
		"library.disable_download": "library-disable-download",
		"log_level":                "log-level",
	}
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q is not registered", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

func Validate(cfg Config) error {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn, or error)", cfg.LogLevel)
	}
	return nil
}
