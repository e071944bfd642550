package python

import (
	"bytes"
	"strings"

	"github.com/apistub/apistub/ir"
)

// typingHeader is the import line placed at the top of every generated stub
// module. The full set is imported unconditionally so descriptor type
// expressions can reference any of these names.
const typingHeader = "from typing import Any, Collection, MutableMapping, Optional, Tuple, Union"

// Emitter handles Python stub emission for API operation descriptors.
type Emitter struct {
	config    GeneratorConfig
	globals   []ir.GlobalParam
	indentStr string
}

// NewEmitter creates an Emitter for the given configuration and global
// parameter table.
func NewEmitter(config GeneratorConfig, globals []ir.GlobalParam) *Emitter {
	indentStr := "    "
	if config.IndentStyle == "tab" {
		indentStr = "\t"
	} else if config.IndentSize > 0 {
		indentStr = strings.Repeat(" ", config.IndentSize)
	}
	return &Emitter{config: config, globals: globals, indentStr: indentStr}
}

// EmitFunction emits a single stub method declaration at the given indent
// depth. The body is always the ellipsis placeholder.
func (e *Emitter) EmitFunction(buf *bytes.Buffer, api *ir.APIDescriptor, depth int) {
	indent := strings.Repeat(e.indentStr, depth)

	if e.config.EmitComments && !api.Documentation.IsZero() {
		e.emitComment(buf, api.Documentation, indent)
	}

	buf.WriteString(indent)
	if e.config.Python.Flavor == "async" {
		buf.WriteString("async ")
	}
	buf.WriteString("def ")
	buf.WriteString(escapeReservedWord(api.MethodName()))
	buf.WriteString("(self, ")
	buf.WriteString(RenderParams(api, e.globals))
	buf.WriteString(") -> ")
	buf.WriteString(e.returnType())
	buf.WriteString(": ...\n")
}

// EmitClass emits a client class with one stub method per endpoint.
func (e *Emitter) EmitClass(buf *bytes.Buffer, svc ir.Service) {
	buf.WriteString("class ")
	buf.WriteString(e.ClassName(svc.Name))
	if e.config.Python.BaseClass != "" {
		buf.WriteString("(")
		buf.WriteString(e.config.Python.BaseClass)
		buf.WriteString(")")
	}
	buf.WriteString(":\n")

	if len(svc.Endpoints) == 0 {
		buf.WriteString(e.indentStr)
		buf.WriteString("...\n")
		return
	}

	for i := range svc.Endpoints {
		if i > 0 {
			buf.WriteString("\n")
		}
		e.EmitFunction(buf, &svc.Endpoints[i], 1)
	}
}

// EmitModule emits a complete stub module for the given services: typing
// header, optional frontmatter, then one class per service.
func (e *Emitter) EmitModule(buf *bytes.Buffer, services []ir.Service) {
	buf.WriteString(typingHeader)
	buf.WriteString("\n")

	if e.config.Frontmatter != "" {
		buf.WriteString("\n")
		buf.WriteString(e.config.Frontmatter)
		if !strings.HasSuffix(e.config.Frontmatter, "\n") {
			buf.WriteString("\n")
		}
	}

	for _, svc := range services {
		buf.WriteString("\n")
		e.EmitClass(buf, svc)
	}
}

// ClassName returns the generated class name for a service.
// Top-level operations (service "") use the configured client class name.
func (e *Emitter) ClassName(service string) string {
	if service == "" {
		if e.config.Python.ClientClass != "" {
			return e.config.Python.ClientClass
		}
		return "Client"
	}
	suffix := e.config.Python.ClassSuffix
	if suffix == "" {
		suffix = "Client"
	}
	return pascalCase(service) + suffix
}

func (e *Emitter) returnType() string {
	if e.config.Python.ReturnType != "" {
		return e.config.Python.ReturnType
	}
	return "Any"
}

// emitComment emits operation documentation as comment lines.
func (e *Emitter) emitComment(buf *bytes.Buffer, doc ir.Documentation, indent string) {
	for _, line := range strings.Split(doc.Body, "\n") {
		buf.WriteString(indent)
		buf.WriteString("# ")
		buf.WriteString(strings.TrimSpace(line))
		buf.WriteString("\n")
	}
	if doc.URL != "" {
		buf.WriteString(indent)
		buf.WriteString("# ")
		buf.WriteString(doc.URL)
		buf.WriteString("\n")
	}
}

// pascalCase converts a snake_case or dotted service name to PascalCase.
func pascalCase(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '.' || r == '-' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
