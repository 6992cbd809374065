package common

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DataT is the numeric precision the engine is instantiated with. The
// original C++ source picked one of float/double at compile time via
// #ifdef SINGLE_PRECISION; here the same choice is a Go type parameter
// bound by this constraint instead of a build tag.
type DataT interface {
	~float32 | ~float64
}

// RegistryConfig selects the session registry's persistence mirror.
type RegistryConfig struct {
	Backend       string `yaml:"backend"`
	PureKVAddress string `yaml:"pureKVAddress"`
	PureKVTimeout int    `yaml:"pureKVTimeout"`
}

// Config is threaded explicitly through the engine rather than read from a
// mutable package-level global, per the write-once guidance in the spec.
type Config struct {
	WarpingBandRatio float64        `yaml:"warpingBandRatio"`
	Precision        string         `yaml:"precision"`
	Registry         RegistryConfig `yaml:"registry"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		WarpingBandRatio: 0.1,
		Precision:        "double",
		Registry: RegistryConfig{
			Backend:       "memory",
			PureKVTimeout: 5,
		},
	}
}

// LoadConfig applies defaults, then overlays anything set in the YAML file
// at path, so a partially-specified config file is always valid.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, Wrap(KindIoError, "reading config file", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, Wrap(KindUnparsable, "parsing config file", err)
	}
	if cfg.WarpingBandRatio <= 0 || cfg.WarpingBandRatio > 1 {
		return cfg, NewError(KindInvalidArgument, "warpingBandRatio must be in (0, 1]")
	}
	return cfg, nil
}
