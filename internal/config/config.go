// File: internal/config/config.go
// Brief: CLI option structs and flag plumbing.

// Package config defines the flag plumbing and runtime options shared by
// appstack's commands, translating Cobra/Viper flag values into strongly
// typed structs the engine calls consume.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// APPSTACK_LOG_LEVEL.
const EnvPrefix = "APPSTACK"

// Options holds the global CLI configuration.
type Options struct {
	LogLevel string
	NoColor  bool
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{LogLevel: "info"}
}

// BindFlags attaches the global flags to a FlagSet.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor, "Disable colored output")
}

// ApplyEnv overlays APPSTACK_* environment values onto flags the user did
// not set explicitly.
func (o *Options) ApplyEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if !fs.Changed("log-level") {
		if s := v.GetString("log-level"); s != "" {
			o.LogLevel = s
		}
	}
	if !fs.Changed("no-color") && v.IsSet("no-color") {
		o.NoColor = v.GetBool("no-color")
	}
}

// DefineOptions configures the validate command.
type DefineOptions struct {
	Strict bool
}

// NewDefineOptions returns DefineOptions with defaults applied.
func NewDefineOptions() *DefineOptions {
	return &DefineOptions{Strict: true}
}

// BindFlags attaches validate flags to a FlagSet.
func (o *DefineOptions) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Strict, "strict", o.Strict, "Run schema and cross-reference validation (disable to normalize only)")
}

// ComposeOptions configures the compose command.
type ComposeOptions struct {
	ObjectConflict string
	Manifest       string
	Namespace      string
	Output         string
	Validate       bool
}

// NewComposeOptions returns ComposeOptions with defaults applied.
func NewComposeOptions() *ComposeOptions {
	return &ComposeOptions{ObjectConflict: "error", Manifest: "last"}
}

// BindFlags attaches compose flags to a FlagSet.
func (o *ComposeOptions) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ObjectConflict, "object-conflict", o.ObjectConflict, "Conflict policy for same-named objects (error, override, merge)")
	fs.StringVar(&o.Manifest, "manifest", o.Manifest, "Manifest selection (first, last, or a stack index)")
	fs.StringVar(&o.Namespace, "namespace", o.Namespace, "Reserved for multi-tenant isolation; no merge effect yet")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Write the composed stack to this file instead of stdout")
	fs.BoolVar(&o.Validate, "validate", o.Validate, "Run full validation over the composed stack")
}
