// Package config resolves gradientfill settings from defaults, a .env file,
// the process environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/gradientfill/internal/handler"
)

// Environment variables read by WithEnv.
const (
	EnvDocument = "GRADIENTFILL_DOCUMENT"
	EnvPlugin   = "GRADIENTFILL_PLUGIN"
	EnvVerbose  = "GRADIENTFILL_VERBOSE"
	EnvSeed     = "GRADIENTFILL_SEED"
)

// Flag names read by WithFlags.
const (
	FlagDocument = "document"
	FlagPlugin   = "plugin"
	FlagVerbose  = "verbose"
	FlagSeed     = "seed"
)

// DefaultDocument is the scene file used when none is configured.
const DefaultDocument = "scene.yaml"

// Config holds host settings.
type Config struct {
	// DocumentPath is the scene file the host loads and saves.
	DocumentPath string

	// PluginPath is an external plugin binary. Empty runs the builtin handler.
	PluginPath string

	// Verbose enables debug logging, including plugin output.
	Verbose bool

	// Seed fixes the random colour source. Zero means unseeded.
	Seed uint64

	// UIWidth and UIHeight are the panel size the plugin asks for, in pixels.
	UIWidth  int
	UIHeight int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DocumentPath: DefaultDocument,
		UIWidth:      handler.UIWidth,
		UIHeight:     handler.UIHeight,
	}
}

// Builder layers configuration sources over the defaults.
type Builder struct {
	config   Config
	dotEnv   []string
	useEnv   bool
	flags    *pflag.FlagSet
	lookupFn func(string) (string, bool)
}

// NewBuilder creates a builder starting from Default().
func NewBuilder() *Builder {
	return &Builder{
		config:   Default(),
		lookupFn: os.LookupEnv,
	}
}

// WithDotEnv reads the given .env files. Missing files are skipped; values
// already in the environment win.
func (b *Builder) WithDotEnv(paths ...string) *Builder {
	b.dotEnv = append(b.dotEnv, paths...)
	return b
}

// WithEnv enables reading GRADIENTFILL_* environment variables.
func (b *Builder) WithEnv() *Builder {
	b.useEnv = true
	return b
}

// WithFlags applies the flags in set that were set explicitly. Flags missing
// from set or left at their default are ignored.
func (b *Builder) WithFlags(set *pflag.FlagSet) *Builder {
	b.flags = set
	return b
}

// Build resolves the configuration.
func (b *Builder) Build() (Config, error) {
	cfg := b.config
	if b.useEnv {
		if err := b.applyEnv(&cfg); err != nil {
			return cfg, err
		}
	}
	if b.flags != nil {
		if err := applyFlags(&cfg, b.flags); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (b *Builder) applyEnv(cfg *Config) error {
	fileVals := map[string]string{}
	for _, path := range b.dotEnv {
		vals, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range vals {
			if _, seen := fileVals[k]; !seen {
				fileVals[k] = v
			}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := b.lookupFn(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	if v, ok := lookup(EnvDocument); ok && v != "" {
		cfg.DocumentPath = v
	}
	if v, ok := lookup(EnvPlugin); ok {
		cfg.PluginPath = v
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvVerbose, err)
		}
		cfg.Verbose = verbose
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	return nil
}

func applyFlags(cfg *Config, set *pflag.FlagSet) error {
	var err error
	if set.Changed(FlagDocument) {
		if cfg.DocumentPath, err = set.GetString(FlagDocument); err != nil {
			return err
		}
	}
	if set.Changed(FlagPlugin) {
		if cfg.PluginPath, err = set.GetString(FlagPlugin); err != nil {
			return err
		}
	}
	if set.Changed(FlagVerbose) {
		if cfg.Verbose, err = set.GetBool(FlagVerbose); err != nil {
			return err
		}
	}
	if set.Changed(FlagSeed) {
		if cfg.Seed, err = set.GetUint64(FlagSeed); err != nil {
			return err
		}
	}
	return nil
}
