// Package apistub generates Python type-stub (.pyi) files for REST API
// clients from API descriptor files.
package apistub

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apistub/apistub/ir"
	"github.com/apistub/apistub/provider"
	"github.com/apistub/apistub/python"
	"github.com/apistub/apistub/sink"
)

// Config holds the configuration for stub generation.
type Config struct {
	// OutDir is the directory where generated stub files are written.
	// e.g. "./client/stubs"
	OutDir string

	// SpecDir is the directory containing API descriptor files.
	// Ignored when SpecFiles is set.
	SpecDir string

	// SpecFiles lists descriptor files to load, in order.
	SpecFiles []string

	// Flavor selects the stub calling convention.
	// Supported values: "sync" (default), "async".
	Flavor string

	// SingleFile emits all services into a single __init__.pyi.
	// Default (false) generates one file per service.
	SingleFile bool

	// GlobalParams overrides the global query parameters available to every
	// operation. When empty, parameters from a _common descriptor apply,
	// falling back to the standard serialization controls
	// (pretty/human/error_trace/format/filter_path).
	GlobalParams []ir.GlobalParam

	// ReturnType is the annotated return type for every stub function.
	// Default: "Any".
	ReturnType string

	// ClientClass is the class name for top-level operations.
	// Default: "Client".
	ClientClass string

	// BaseClass, when set, is emitted as the base of every generated class.
	BaseClass string

	// EmitComments includes operation documentation as comments.
	EmitComments bool

	// Frontmatter is content added to the top of each generated file.
	Frontmatter string

	// LineEnding is "lf" (default) or "crlf".
	LineEnding string
}

// DefaultGlobalParams returns the standard serialization-control parameters
// accepted by every operation.
func DefaultGlobalParams() []ir.GlobalParam {
	return []ir.GlobalParam{
		{Name: "pretty", Type: "Optional[bool]"},
		{Name: "human", Type: "Optional[bool]"},
		{Name: "error_trace", Type: "Optional[bool]"},
		{Name: "format", Type: "Optional[str]"},
		{Name: "filter_path", Type: "Optional[Union[str, Collection[str]]]"},
	}
}

// Generate loads descriptors and writes Python stubs for them.
func Generate(cfg *Config) error {
	if cfg.OutDir == "" {
		return fmt.Errorf("OutDir is required")
	}

	cfg = applyConfigDefaults(cfg)
	ctx := context.Background()

	p := &provider.SpecProvider{}
	schema, err := p.BuildSchema(ctx, provider.SpecInputOptions{
		Dir:          cfg.SpecDir,
		Files:        cfg.SpecFiles,
		GlobalParams: cfg.GlobalParams,
	})
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}

	return GenerateSchema(ctx, schema, cfg)
}

// GenerateSchema writes Python stubs for an already-built schema.
func GenerateSchema(ctx context.Context, schema *ir.Schema, cfg *Config) error {
	if cfg.OutDir == "" {
		return fmt.Errorf("OutDir is required")
	}
	cfg = applyConfigDefaults(cfg)

	if errs := schema.Validate(); len(errs) > 0 {
		return TransformError(errors.Join(errs...))
	}

	if len(schema.GlobalParams) == 0 {
		schema.GlobalParams = DefaultGlobalParams()
	}

	genCfg := python.GeneratorConfig{
		IndentStyle:     "space",
		IndentSize:      4,
		LineEnding:      cfg.LineEnding,
		TrailingNewline: true,
		SingleFile:      cfg.SingleFile,
		EmitComments:    cfg.EmitComments,
		Frontmatter:     cfg.Frontmatter,
		Python: python.PythonConfig{
			Flavor:      cfg.Flavor,
			ReturnType:  cfg.ReturnType,
			ClientClass: cfg.ClientClass,
			BaseClass:   cfg.BaseClass,
		},
	}

	filesystemSink := sink.NewFilesystemSink(cfg.OutDir)

	gen := &python.PythonGenerator{}
	result, err := gen.Generate(ctx, schema, python.GenerateOptions{
		Sink:   filesystemSink,
		Config: genCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to generate stubs: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", w.Code, w.Message)
	}

	return nil
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Flavor == "" {
		result.Flavor = "sync"
	}
	if result.ReturnType == "" {
		result.ReturnType = "Any"
	}
	if result.LineEnding == "" {
		result.LineEnding = "lf"
	}

	return &result
}
