// Package ir defines the intermediate representation of API operations
// consumed by stub generators. Providers build an ir.Schema from descriptor
// files; generators emit language-specific stubs from it.
package ir

import "strings"

// ParameterInfo describes one named, typed parameter of an API operation.
type ParameterInfo struct {
	// Name is the parameter identifier. Unique within the owning
	// operation's parameter set.
	Name string

	// Type is the target-language type expression (e.g. "str", "int").
	Type string

	// Required controls placement: required parameters render positionally
	// before the keyword-only marker, optional ones after it.
	Required bool
}

// BodyInfo describes an operation's request body acceptance.
type BodyInfo struct {
	// Required indicates the operation cannot be called without a body.
	Required bool

	// Description is optional documentation for the body payload.
	Description string
}

// GlobalParam is a query parameter implicitly available to every operation
// unless shadowed by an operation-specific parameter of the same name.
type GlobalParam struct {
	// Name is the parameter identifier.
	Name string

	// Type is the full target-language type expression, emitted verbatim
	// (e.g. "Optional[bool]").
	Type string
}

// APIDescriptor represents a single API operation's full parameter surface.
//
// Slice fields preserve insertion order from the source descriptor; generators
// rely on that order for deterministic output.
type APIDescriptor struct {
	// Name is the operation identifier. Dotted names group into services:
	// "indices.create" belongs to service "indices" as method "create".
	Name string

	// Parts contains the operation's named parameters in document order.
	Parts []ParameterInfo

	// Body is non-nil when the operation accepts a request body.
	Body *BodyInfo

	// QueryParams lists operation-specific query parameter names in
	// document order.
	QueryParams []string

	// FuncParams optionally overrides the set of names used for
	// global-parameter shadowing. When empty, FuncParamNames derives the
	// set from Parts, QueryParams, and Body.
	FuncParams []string

	// Documentation for this operation.
	Documentation Documentation
}

// Documentation holds doc text attached to an operation.
type Documentation struct {
	// Body is the documentation text. May span multiple lines.
	Body string

	// URL points at external reference documentation, if any.
	URL string
}

// IsZero reports whether the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Body == "" && d.URL == ""
}

// ServiceName returns the service portion of a dotted operation name, or ""
// for top-level operations.
func (a *APIDescriptor) ServiceName() string {
	if i := strings.IndexByte(a.Name, '.'); i >= 0 {
		return a.Name[:i]
	}
	return ""
}

// MethodName returns the method portion of the operation name.
func (a *APIDescriptor) MethodName() string {
	if i := strings.IndexByte(a.Name, '.'); i >= 0 {
		return a.Name[i+1:]
	}
	return a.Name
}

// FuncParamNames returns the set of parameter names already claimed by this
// operation. Global parameters whose names appear in this set are shadowed
// and must not be rendered again.
//
// When FuncParams is set it is used verbatim. Otherwise the set is derived
// from Parts and QueryParams, plus "body" when the operation accepts a body.
func (a *APIDescriptor) FuncParamNames() map[string]bool {
	names := make(map[string]bool, len(a.Parts)+len(a.QueryParams)+1)
	if len(a.FuncParams) > 0 {
		for _, n := range a.FuncParams {
			names[n] = true
		}
		return names
	}
	for _, p := range a.Parts {
		names[p.Name] = true
	}
	for _, q := range a.QueryParams {
		names[q] = true
	}
	if a.Body != nil {
		names["body"] = true
	}
	return names
}

// RequiredParts returns the required parameters in document order.
func (a *APIDescriptor) RequiredParts() []ParameterInfo {
	var out []ParameterInfo
	for _, p := range a.Parts {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// OptionalParts returns the optional parameters in document order.
func (a *APIDescriptor) OptionalParts() []ParameterInfo {
	var out []ParameterInfo
	for _, p := range a.Parts {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}
