package apistub

import "github.com/apistub/apistub/ir"

// Flavor represents a stub generation output flavor.
type Flavor string

const (
	// FlavorSync generates plain `def` stubs for a blocking client.
	FlavorSync Flavor = "sync"

	// FlavorAsync generates `async def` stubs for an asyncio client.
	FlavorAsync Flavor = "async"
)

// String returns the flavor name.
func (f Flavor) String() string {
	return string(f)
}

// Generator provides a fluent API for stub generation.
// Create with FromDir() or FromFiles() and configure with method chaining.
//
// Example:
//
//	apistub.FromDir("./rest-api-spec").
//	    WithFlavor(apistub.FlavorAsync).
//	    ToDir("./client/stubs")
type Generator struct {
	cfg Config
}

// FromDir creates a Generator that loads every descriptor file in dir.
// This is the entry point for the fluent API.
func FromDir(dir string) *Generator {
	return &Generator{cfg: Config{SpecDir: dir}}
}

// FromFiles creates a Generator for an explicit list of descriptor files.
func FromFiles(files ...string) *Generator {
	return &Generator{cfg: Config{SpecFiles: files}}
}

// WithFlavor sets the stub calling convention.
func (g *Generator) WithFlavor(f Flavor) *Generator {
	g.cfg.Flavor = f.String()
	return g
}

// WithGlobalParam appends a global query parameter available to every
// operation. The type expression is emitted verbatim.
// Calling this at least once replaces any _common descriptor parameters.
func (g *Generator) WithGlobalParam(name, typ string) *Generator {
	g.cfg.GlobalParams = append(g.cfg.GlobalParams, ir.GlobalParam{Name: name, Type: typ})
	return g
}

// WithReturnType sets the annotated return type for every stub function.
func (g *Generator) WithReturnType(typ string) *Generator {
	g.cfg.ReturnType = typ
	return g
}

// WithClientClass sets the class name for top-level operations.
func (g *Generator) WithClientClass(name string) *Generator {
	g.cfg.ClientClass = name
	return g
}

// WithBaseClass sets the base class of every generated class.
func (g *Generator) WithBaseClass(name string) *Generator {
	g.cfg.BaseClass = name
	return g
}

// WithFrontmatter adds content to the top of each generated file.
func (g *Generator) WithFrontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// WithComments includes operation documentation as comments in output.
func (g *Generator) WithComments() *Generator {
	g.cfg.EmitComments = true
	return g
}

// SingleFile emits all services into a single __init__.pyi.
func (g *Generator) SingleFile() *Generator {
	g.cfg.SingleFile = true
	return g
}

// ToDir runs generation, writing stub files under the given directory.
func (g *Generator) ToDir(out string) error {
	cfg := g.cfg
	cfg.OutDir = out
	return Generate(&cfg)
}

// Config returns a copy of the accumulated configuration.
func (g *Generator) Config() Config {
	return g.cfg
}
