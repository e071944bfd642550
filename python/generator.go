package python

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/apistub/apistub/ir"
)

// PythonGenerator emits Python type-stub (.pyi) modules for a schema.
type PythonGenerator struct{}

// Name returns "python".
func (g *PythonGenerator) Name() string { return "python" }

// Generate emits one stub module per service, or a single module when
// SingleFile is set. Top-level operations go to __init__.pyi; a namespaced
// service goes to <service>.pyi.
func (g *PythonGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}

	cfg := opts.Config
	switch cfg.Python.Flavor {
	case "", "sync", "async":
	default:
		return nil, fmt.Errorf("unknown flavor: %q (expected \"sync\" or \"async\")", cfg.Python.Flavor)
	}

	emitter := NewEmitter(cfg, schema.GlobalParams)
	services := schema.Services()

	result := &GenerateResult{
		Warnings: append([]ir.Warning(nil), schema.Warnings...),
	}
	result.Warnings = append(result.Warnings, identifierWarnings(schema)...)

	if cfg.SingleFile {
		if err := g.writeModule(ctx, emitter, services, "__init__.pyi", opts, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	for _, svc := range services {
		path := "__init__.pyi"
		if svc.Name != "" {
			path = svc.Name + ".pyi"
		}
		if err := g.writeModule(ctx, emitter, []ir.Service{svc}, path, opts, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (g *PythonGenerator) writeModule(ctx context.Context, emitter *Emitter, services []ir.Service, path string, opts GenerateOptions, result *GenerateResult) error {
	var buf bytes.Buffer
	emitter.EmitModule(&buf, services)

	content := buf.String()
	if opts.Config.LineEnding == "crlf" {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	if opts.Config.TrailingNewline && !strings.HasSuffix(content, "\n") {
		content += lineEnding(opts.Config)
	}

	data := []byte(content)
	if err := opts.Sink.WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	result.Files = append(result.Files, OutputFile{Path: path, Size: int64(len(data))})
	for _, svc := range services {
		result.StubsGenerated += len(svc.Endpoints)
	}
	return nil
}

// identifierWarnings flags parameter names that do not survive as valid
// Python identifiers even after reserved-word escaping.
func identifierWarnings(schema *ir.Schema) []ir.Warning {
	var warnings []ir.Warning
	seen := map[string]bool{}
	warn := func(endpoint, name string) {
		key := endpoint + "/" + name
		if seen[key] || isValidIdentifier(escapeReservedWord(name)) {
			return
		}
		seen[key] = true
		warnings = append(warnings, ir.Warning{
			Code:    "invalid_identifier",
			Message: fmt.Sprintf("%s: parameter %q is not a valid Python identifier", endpoint, name),
		})
	}
	for _, api := range schema.Endpoints {
		for _, p := range api.Parts {
			warn(api.Name, p.Name)
		}
		for _, q := range api.QueryParams {
			warn(api.Name, q)
		}
	}
	return warnings
}

func lineEnding(cfg GeneratorConfig) string {
	if cfg.LineEnding == "crlf" {
		return "\r\n"
	}
	return "\n"
}
