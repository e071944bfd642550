package python

import (
	"strings"

	"github.com/apistub/apistub/ir"
)

// Fixed trailing parameters carried by every stub function.
const (
	paramsTrailer  = "params: Optional[MutableMapping[str, Any]]=..."
	headersTrailer = "headers: Optional[MutableMapping[str, str]]=..."
)

// RenderParams produces the text placed inside a stub function's parameter
// parentheses, excluding the receiver.
//
// Ordering policy:
//  1. required named parameters, in document order
//  2. the keyword-only marker "*"
//  3. the body parameter, when the operation accepts a body
//  4. optional named parameters, in document order
//  5. operation query parameters, in document order
//  6. global query parameters not shadowed by the operation's own names
//  7. the fixed params/headers trailers
//
// The result is deterministic for identical inputs and the function never
// fails; collisions within api itself are the schema's responsibility
// (ir.Schema.Validate).
func RenderParams(api *ir.APIDescriptor, globals []ir.GlobalParam) string {
	items := make([]string, 0, len(api.Parts)+len(api.QueryParams)+len(globals)+4)

	for _, p := range api.Parts {
		if p.Required {
			items = append(items, escapeReservedWord(p.Name)+": "+p.Type)
		}
	}

	// Everything past this point is keyword-only.
	items = append(items, "*")

	if api.Body != nil {
		if api.Body.Required {
			items = append(items, "body: Any")
		} else {
			items = append(items, "body: Optional[Any]=...")
		}
	}

	for _, p := range api.Parts {
		if !p.Required {
			items = append(items, escapeReservedWord(p.Name)+": Optional["+p.Type+"]=...")
		}
	}

	for _, q := range api.QueryParams {
		items = append(items, escapeReservedWord(q)+": Optional[Any]=...")
	}

	// Global parameters shadowed by an operation-specific parameter of the
	// same name are suppressed; the global's type is emitted verbatim.
	funcParams := api.FuncParamNames()
	for _, g := range globals {
		if funcParams[g.Name] {
			continue
		}
		items = append(items, escapeReservedWord(g.Name)+": "+g.Type+"=...")
	}

	items = append(items, paramsTrailer, headersTrailer)

	return strings.Join(items, ", ")
}
