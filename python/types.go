package python

import (
	"context"

	"github.com/apistub/apistub/ir"
	"github.com/apistub/apistub/sink"
)

// Generator transforms API operation descriptors into target language stubs.
type Generator interface {
	// Name returns the generator's identifier (e.g., "python").
	Name() string

	// Generate produces stub files for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// StubsGenerated is the count of stub functions successfully emitted.
	StubsGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// GeneratorConfig provides common configuration options.
type GeneratorConfig struct {
	// Formatting
	IndentStyle     string // "space" or "tab"
	IndentSize      int    // Spaces per indent level (when IndentStyle is "space")
	LineEnding      string // "lf" or "crlf"
	TrailingNewline bool   // Ensure files end with a newline

	// SingleFile emits all services into a single __init__.pyi.
	// Default (false) generates one file per service plus a barrel
	// __init__.pyi for top-level operations.
	SingleFile bool

	// EmitComments includes operation documentation as comments in output.
	EmitComments bool

	// Frontmatter is content added to the top of each generated file,
	// after the typing import header.
	Frontmatter string

	// Python contains Python-specific options.
	Python PythonConfig
}

// PythonConfig contains Python-specific options.
type PythonConfig struct {
	// Flavor controls the stub calling convention.
	// MUST be one of: "sync", "async". Async emits `async def`.
	Flavor string

	// ReturnType is the annotated return type for every stub function.
	// Default: "Any".
	ReturnType string

	// ClientClass is the class name for top-level operations.
	// Default: "Client".
	ClientClass string

	// ClassSuffix is appended to namespaced service class names
	// ("indices" becomes "IndicesClient"). Default: "Client".
	ClassSuffix string

	// BaseClass, when set, is emitted as the base of every generated class.
	BaseClass string
}
