// Package config loads apistub CLI configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/apistub/apistub/ir"
)

// Config represents the CLI configuration.
type Config struct {
	Spec   SpecConfig   `mapstructure:"spec"`
	Output OutputConfig `mapstructure:"output"`
	Stubs  StubsConfig  `mapstructure:"stubs"`
}

// SpecConfig holds descriptor input settings.
type SpecConfig struct {
	Dir   string   `mapstructure:"dir"`   // Directory containing descriptor files
	Files []string `mapstructure:"files"` // Explicit descriptor files (overrides Dir)
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`         // Output directory for stub files
	SingleFile bool   `mapstructure:"single_file"` // Emit everything into one __init__.pyi
	LineEnding string `mapstructure:"line_ending"` // "lf" or "crlf"
}

// StubsConfig holds stub emission settings.
type StubsConfig struct {
	Flavor       string            `mapstructure:"flavor"`        // "sync" or "async"
	ReturnType   string            `mapstructure:"return_type"`   // Annotated return type
	ClientClass  string            `mapstructure:"client_class"`  // Class name for top-level operations
	BaseClass    string            `mapstructure:"base_class"`    // Base class for generated classes
	Comments     bool              `mapstructure:"comments"`      // Emit documentation comments
	Frontmatter  string            `mapstructure:"frontmatter"`   // Content prepended to each file
	GlobalParams map[string]string `mapstructure:"global_params"` // name -> type overrides
}

// Load reads the configuration from a file, falling back to defaults when the
// file does not exist. Environment variables with the APISTUB_ prefix
// override file values (APISTUB_OUTPUT_DIR, APISTUB_STUBS_FLAVOR, ...).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = "apistub.yaml"
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("APISTUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine; defaults and env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("spec.dir", "./rest-api-spec")
	v.SetDefault("output.dir", "./stubs")
	v.SetDefault("output.single_file", false)
	v.SetDefault("output.line_ending", "lf")
	v.SetDefault("stubs.flavor", "sync")
	v.SetDefault("stubs.return_type", "Any")
	v.SetDefault("stubs.client_class", "Client")
	v.SetDefault("stubs.comments", false)
}

// validate checks enum-valued fields.
func (c *Config) validate() error {
	switch c.Stubs.Flavor {
	case "sync", "async":
	default:
		return fmt.Errorf("invalid stubs.flavor %q (expected \"sync\" or \"async\")", c.Stubs.Flavor)
	}
	switch c.Output.LineEnding {
	case "lf", "crlf":
	default:
		return fmt.Errorf("invalid output.line_ending %q (expected \"lf\" or \"crlf\")", c.Output.LineEnding)
	}
	return nil
}

// GlobalParams converts the configured global-parameter table into ir form.
// Returns nil when no overrides are configured, so _common descriptors and
// built-in defaults apply.
//
// Viper lowercases map keys; the descriptor convention is already lowercase,
// so names pass through unchanged.
func (c *Config) GlobalParams() []ir.GlobalParam {
	if len(c.Stubs.GlobalParams) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Stubs.GlobalParams))
	for name := range c.Stubs.GlobalParams {
		names = append(names, name)
	}
	// Map iteration order is random; sort for deterministic output.
	sort.Strings(names)

	params := make([]ir.GlobalParam, 0, len(names))
	for _, name := range names {
		params = append(params, ir.GlobalParam{Name: name, Type: c.Stubs.GlobalParams[name]})
	}
	return params
}
