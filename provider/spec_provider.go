// Package provider builds ir schemas from REST API descriptor files.
//
// Each descriptor file maps one API operation name to its surface: URL paths
// with named parts, query parameters, and body acceptance. JSON descriptors
// parse fine through the YAML decoder, so both formats are accepted.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/apistub/apistub/ir"
)

// commonFile is the shared-parameter descriptor. Its params become the
// schema's global query parameters instead of an operation.
const commonFile = "_common"

var validate = validator.New()

// SpecInputOptions configures descriptor loading.
type SpecInputOptions struct {
	// Dir is a directory whose *.json/*.yaml/*.yml files are loaded in
	// sorted order. Ignored when Files is set.
	Dir string

	// Files lists descriptor files to load, in order.
	Files []string

	// GlobalParams, when non-empty, replaces any global parameters found
	// in a _common descriptor.
	GlobalParams []ir.GlobalParam
}

// SpecProvider loads API descriptor files into an ir.Schema.
type SpecProvider struct{}

// BuildSchema loads and parses the configured descriptor files.
// Operations keep file order; parameters keep document order within each
// file, so generation output is deterministic for a fixed input set.
func (p *SpecProvider) BuildSchema(ctx context.Context, opts SpecInputOptions) (*ir.Schema, error) {
	files := opts.Files
	if len(files) == 0 {
		if opts.Dir == "" {
			return nil, fmt.Errorf("either Dir or Files is required")
		}
		var err error
		files, err = listSpecFiles(opts.Dir)
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no descriptor files found in %q", opts.Dir)
	}

	schema := &ir.Schema{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.loadFile(file, schema); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	if len(opts.GlobalParams) > 0 {
		schema.GlobalParams = opts.GlobalParams
	}

	return schema, nil
}

// listSpecFiles returns the descriptor files in dir, sorted by name.
func listSpecFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Raw descriptor shapes, decoded for validation. Parameter ordering comes
// from walking the yaml.Node tree, not from these maps.

type apiSpec struct {
	Documentation *docSpec              `yaml:"documentation"`
	Stability     string                `yaml:"stability"`
	URL           *urlSpec              `yaml:"url" validate:"required"`
	Params        map[string]*paramSpec `yaml:"params"`
	Body          *bodySpec             `yaml:"body"`
}

type docSpec struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type urlSpec struct {
	Paths []pathSpec `yaml:"paths" validate:"min=1,dive"`
}

type pathSpec struct {
	Path    string                `yaml:"path" validate:"required"`
	Methods []string              `yaml:"methods"`
	Parts   map[string]*paramSpec `yaml:"parts"`
}

type paramSpec struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

type bodySpec struct {
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

type commonSpec struct {
	Params map[string]*paramSpec `yaml:"params"`
}

func (p *SpecProvider) loadFile(file string, schema *ir.Schema) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse descriptor: %w", err)
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return fmt.Errorf("descriptor root must be a mapping")
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if base == commonFile {
		return loadCommon(root, schema)
	}

	// Top-level mapping: operation name -> descriptor. Usually a single
	// entry, but multiple operations per file are accepted.
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		api, err := buildDescriptor(name, root.Content[i+1])
		if err != nil {
			return err
		}
		schema.AddEndpoint(*api)
	}
	return nil
}

// loadCommon extracts a _common descriptor's params as global parameters.
func loadCommon(root *yaml.Node, schema *ir.Schema) error {
	var common commonSpec
	if err := root.Decode(&common); err != nil {
		return fmt.Errorf("failed to decode common descriptor: %w", err)
	}

	paramsNode := mappingValue(root, "params")
	if paramsNode == nil {
		return nil
	}
	for i := 0; i+1 < len(paramsNode.Content); i += 2 {
		name := paramsNode.Content[i].Value
		spec := common.Params[name]
		typ := "Any"
		if spec != nil {
			typ = pythonType(spec.Type)
		}
		schema.GlobalParams = append(schema.GlobalParams, ir.GlobalParam{
			Name: name,
			Type: "Optional[" + typ + "]",
		})
	}
	return nil
}

// buildDescriptor converts one operation's descriptor node into an
// ir.APIDescriptor, preserving document order of parts and params.
func buildDescriptor(name string, node *yaml.Node) (*ir.APIDescriptor, error) {
	var spec apiSpec
	if err := node.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%s: failed to decode descriptor: %w", name, err)
	}
	if err := validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("%s: invalid descriptor: %w", name, err)
	}

	api := &ir.APIDescriptor{Name: name}
	if spec.Documentation != nil {
		api.Documentation = ir.Documentation{
			Body: spec.Documentation.Description,
			URL:  spec.Documentation.URL,
		}
	}

	// Parts are collected first-seen across path variants. A part is
	// required when flagged, or when every path variant includes it.
	urlNode := mappingValue(node, "url")
	pathCount := len(spec.URL.Paths)
	seen := make(map[string]int)
	if urlNode != nil {
		if pathsNode := mappingValue(urlNode, "paths"); pathsNode != nil {
			for _, pathNode := range pathsNode.Content {
				partsNode := mappingValue(pathNode, "parts")
				if partsNode == nil {
					continue
				}
				for i := 0; i+1 < len(partsNode.Content); i += 2 {
					partName := partsNode.Content[i].Value
					if _, ok := seen[partName]; !ok {
						var part paramSpec
						if err := partsNode.Content[i+1].Decode(&part); err != nil {
							return nil, fmt.Errorf("%s: invalid part %q: %w", name, partName, err)
						}
						api.Parts = append(api.Parts, ir.ParameterInfo{
							Name:     partName,
							Type:     pythonType(part.Type),
							Required: part.Required,
						})
					}
					seen[partName]++
				}
			}
		}
	}
	for i := range api.Parts {
		if seen[api.Parts[i].Name] == pathCount {
			api.Parts[i].Required = true
		}
	}

	if paramsNode := mappingValue(node, "params"); paramsNode != nil {
		for i := 0; i+1 < len(paramsNode.Content); i += 2 {
			api.QueryParams = append(api.QueryParams, paramsNode.Content[i].Value)
		}
	}

	if spec.Body != nil {
		api.Body = &ir.BodyInfo{
			Required:    spec.Body.Required,
			Description: spec.Body.Description,
		}
	}

	return api, nil
}

// documentRoot unwraps the document node produced by yaml.Unmarshal.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// pythonType maps a descriptor parameter type to a Python type expression.
func pythonType(t string) string {
	switch t {
	case "string", "enum", "text", "time", "date", "duration":
		return "str"
	case "int", "integer", "number", "long":
		return "int"
	case "double", "float":
		return "float"
	case "boolean":
		return "bool"
	case "list":
		return "Any"
	default:
		return "Any"
	}
}
