package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Layer represents a configuration layer source.
type Layer string

const (
	// LayerDefaults represents default configuration values.
	LayerDefaults Layer = "defaults"

	// LayerFile represents configuration from a file.
	LayerFile Layer = "file"

	// LayerEnv represents configuration from environment variables.
	LayerEnv Layer = "env"

	// LayerFlags represents configuration from command-line flags.
	LayerFlags Layer = "flags"
)

// Flag names understood by the flags layer. Commands register only the
// flags they need; unregistered names are skipped.
const (
	FlagBytesPerLine  = "bytes-per-line"
	FlagOutput        = "output"
	FlagMarker        = "marker"
	FlagMaxLogSize    = "max-log-size"
	FlagExtract       = "extract"
	FlagExtractBinary = "extract-binary"
	FlagExtractDir    = "extract-dir"
	FlagLogLevel      = "log-level"
	FlagLogPretty     = "log-pretty"
)

// Source records where the effective configuration came from.
type Source struct {
	// File is the config file that was merged, if any.
	File string
	// Env lists the environment variables that were applied.
	Env []string
	// Flags lists the flags that were applied.
	Flags []string
}

// LayeredLoader provides layered configuration loading.
// Configuration is loaded in the following order:
// 1. Defaults - DefaultConfig()
// 2. File - configuration file (YAML)
// 3. Environment - MDIMAGE_* variables
// 4. Flags - flags explicitly set on the command line
//
// Each layer overrides values from previous layers.
type LayeredLoader struct {
	enabledLayers map[Layer]bool
	loader        *Loader
}

// NewLayeredLoader creates a new layered configuration loader with all
// layers enabled.
func NewLayeredLoader(loader *Loader) *LayeredLoader {
	return &LayeredLoader{
		enabledLayers: map[Layer]bool{
			LayerDefaults: true,
			LayerFile:     true,
			LayerEnv:      true,
			LayerFlags:    true,
		},
		loader: loader,
	}
}

// EnableLayer enables a specific configuration layer.
func (l *LayeredLoader) EnableLayer(layer Layer) {
	l.enabledLayers[layer] = true
}

// DisableLayer disables a specific configuration layer.
func (l *LayeredLoader) DisableLayer(layer Layer) {
	l.enabledLayers[layer] = false
}

// Load builds the effective configuration. An explicit configPath must exist;
// with an empty configPath the default location is used when present. flags
// may be nil. The result is validated.
func (l *LayeredLoader) Load(configPath string, flags *pflag.FlagSet) (*Config, *Source, error) {
	src := &Source{}

	// Layer 1: Defaults
	cfg := &Config{}
	if l.enabledLayers[LayerDefaults] {
		cfg = DefaultConfig()
	}

	// Layer 2: File
	if l.enabledLayers[LayerFile] {
		path := configPath
		if path == "" && l.loader != nil {
			path = l.loader.ConfigPath()
		}
		if path != "" {
			err := mergeFromFile(cfg, path)
			switch {
			case err == nil:
				src.File = path
			case os.IsNotExist(err) && configPath == "":
				// The default location is optional.
			default:
				return nil, nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Layer 3: Environment
	if l.enabledLayers[LayerEnv] {
		applied, err := LoadFromEnv(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config from environment: %w", err)
		}
		src.Env = applied
	}

	// Layer 4: Flags
	if l.enabledLayers[LayerFlags] && flags != nil {
		applied, err := ApplyFlags(cfg, flags)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config from flags: %w", err)
		}
		src.Flags = applied
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, src, nil
}

// ApplyFlags copies every explicitly changed flag onto cfg and returns the
// names of the applied flags.
func ApplyFlags(cfg *Config, flags *pflag.FlagSet) ([]string, error) {
	var applied []string
	var firstErr error

	set := func(name string, apply func() error) {
		if firstErr != nil || !flags.Changed(name) {
			return
		}
		if err := apply(); err != nil {
			firstErr = fmt.Errorf("flag --%s: %w", name, err)
			return
		}
		applied = append(applied, name)
	}

	set(FlagBytesPerLine, func() (err error) {
		cfg.BytesPerLine, err = flags.GetInt(FlagBytesPerLine)
		return err
	})
	set(FlagOutput, func() (err error) {
		cfg.Output, err = flags.GetString(FlagOutput)
		return err
	})
	set(FlagMarker, func() (err error) {
		cfg.Markers, err = flags.GetStringSlice(FlagMarker)
		return err
	})
	set(FlagMaxLogSize, func() (err error) {
		cfg.MaxLogSize, err = flags.GetInt64(FlagMaxLogSize)
		return err
	})
	set(FlagExtract, func() (err error) {
		cfg.Extract.Enabled, err = flags.GetBool(FlagExtract)
		return err
	})
	set(FlagExtractBinary, func() (err error) {
		cfg.Extract.Binary, err = flags.GetString(FlagExtractBinary)
		return err
	})
	set(FlagExtractDir, func() (err error) {
		cfg.Extract.Dir, err = flags.GetString(FlagExtractDir)
		return err
	})
	set(FlagLogLevel, func() (err error) {
		cfg.Log.Level, err = flags.GetString(FlagLogLevel)
		return err
	})
	set(FlagLogPretty, func() (err error) {
		cfg.Log.Pretty, err = flags.GetBool(FlagLogPretty)
		return err
	})

	if firstErr != nil {
		return nil, firstErr
	}
	return applied, nil
}

// mergeFromFile loads configuration from a YAML file and merges it into cfg.
func mergeFromFile(cfg *Config, filePath string) error {
	// #nosec G304 -- the path comes from --config, MDIMAGE_CONFIG or the home directory.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}
