// Package config loads run configuration via Viper, following the
// teacher pack's am/load.go init-then-cache pattern: a package-level
// cached *viper.Viper, defaults registered before any file or
// environment source is read, and a plain struct Unmarshal target.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of run options §6 External Interfaces names:
// environment selector, build type, inheritance decomposition toggle,
// output directory, the ordered GIR search path, and verbosity.
type Config struct {
	Environment    string   `mapstructure:"environment"`  // "gjs" or "node"
	BuildType      string   `mapstructure:"build_type"`   // "types" (wraps output in declare namespace) or "lib"
	Inheritance    bool     `mapstructure:"inheritance"`  // true switches classes to the interface-plus-constructor decomposition (§4.7)
	OutDir         string   `mapstructure:"out_dir"`
	GIRDirectories []string `mapstructure:"gir_directories"`
	Verbose        bool     `mapstructure:"verbose"`
}

var cached *Config
var v *viper.Viper

// SetDefaults registers every default value onto vv, shared between Load
// and LoadFromFile so a bare invocation without a config file still
// produces a usable Config.
func SetDefaults(vv *viper.Viper) {
	vv.SetDefault("environment", "gjs")
	vv.SetDefault("build_type", "types")
	vv.SetDefault("inheritance", false)
	vv.SetDefault("out_dir", "types")
	vv.SetDefault("gir_directories", []string{"/usr/share/gir-1.0"})
	vv.SetDefault("verbose", false)
}

// Load reads configuration from the process environment, an optional
// config file ("girsurface.yaml" / ".girsurface.yaml" on the search
// path), and registered defaults, in that precedence order, caching the
// result for subsequent calls.
func Load() (*Config, error) {
	if cached != nil {
		return cached, nil
	}
	vv := initViper()

	var c Config
	if err := vv.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cached = &c
	return cached, nil
}

// LoadFromFile loads configuration from an explicit path, bypassing the
// cache and the environment-variable binding Load performs — used by the
// CLI's --config flag.
func LoadFromFile(path string) (*Config, error) {
	vv := viper.New()
	vv.SetConfigFile(path)
	SetDefaults(vv)

	if err := vv.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var c Config
	if err := vv.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config from %s: %w", path, err)
	}
	return &c, nil
}

// Reset clears the cached configuration — tests that need a fresh Load
// call this first.
func Reset() {
	cached = nil
	v = nil
}

func initViper() *viper.Viper {
	if v != nil {
		return v
	}
	vv := viper.New()
	vv.SetConfigName("girsurface")
	vv.AddConfigPath(".")
	vv.SetEnvPrefix("GIRSURFACE")
	vv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vv.AutomaticEnv()
	SetDefaults(vv)

	if err := vv.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// ReadInConfig errors other than "not found" (a malformed config
			// file) are swallowed here, the same way am/load.go tolerates a
			// missing file; Load then proceeds with defaults and environment.
			_ = err
		}
	}

	v = vv
	return v
}
