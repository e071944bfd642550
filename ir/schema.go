package ir

import "sort"

// Schema represents a complete set of API operations to generate stubs for.
type Schema struct {
	// Endpoints contains all API operation descriptors.
	Endpoints []APIDescriptor

	// GlobalParams are query parameters available to every operation unless
	// shadowed. Order is preserved in generated output.
	GlobalParams []GlobalParam

	// Warnings contains non-fatal issues encountered during schema building.
	Warnings []Warning
}

// Warning describes a non-fatal issue found while building or generating.
type Warning struct {
	Code    string
	Message string
}

// AddEndpoint adds an operation descriptor to the schema.
func (s *Schema) AddEndpoint(api APIDescriptor) {
	s.Endpoints = append(s.Endpoints, api)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindEndpoint looks up an operation by name. Returns nil if not found.
func (s *Schema) FindEndpoint(name string) *APIDescriptor {
	for i := range s.Endpoints {
		if s.Endpoints[i].Name == name {
			return &s.Endpoints[i]
		}
	}
	return nil
}

// Service groups the operations that share a service prefix. Operations
// without a dotted name land in the service with Name == "".
type Service struct {
	// Name is the service identifier ("indices", "cluster", ...), or ""
	// for top-level operations.
	Name string

	// Endpoints are the service's operations, in schema order.
	Endpoints []APIDescriptor
}

// Services groups endpoints by their dotted-name prefix. Services are
// returned sorted by name for deterministic output; endpoints keep their
// schema order within each service.
func (s *Schema) Services() []Service {
	byName := make(map[string]*Service)
	for _, api := range s.Endpoints {
		name := api.ServiceName()
		svc, ok := byName[name]
		if !ok {
			svc = &Service{Name: name}
			byName[name] = svc
		}
		svc.Endpoints = append(svc.Endpoints, api)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make([]Service, 0, len(byName))
	for _, name := range names {
		services = append(services, *byName[name])
	}
	return services
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the schema for structural issues. Returns all validation
// errors found, not just the first.
//
// The renderer itself is total over well-formed input and never deduplicates
// beyond the global-parameter shadowing rule, so collisions within an
// operation's own parameter surface must be rejected here.
func (s *Schema) Validate() []error {
	var errs []error

	endpointNames := make(map[string]bool)
	for i := range s.Endpoints {
		api := &s.Endpoints[i]

		if api.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    "empty_name",
				Message: "operation has no name",
			})
			continue
		}
		if endpointNames[api.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_endpoint",
				Message: "duplicate operation name: " + api.Name,
			})
		}
		endpointNames[api.Name] = true

		errs = append(errs, validateEndpoint(api)...)
	}

	globalNames := make(map[string]bool)
	for _, g := range s.GlobalParams {
		if g.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    "empty_name",
				Message: "global parameter has no name",
			})
			continue
		}
		if globalNames[g.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_parameter",
				Message: "duplicate global parameter: " + g.Name,
			})
		}
		globalNames[g.Name] = true
	}

	return errs
}

// validateEndpoint checks one operation's parameter surface for collisions
// and for FuncParams consistency.
func validateEndpoint(api *APIDescriptor) []error {
	var errs []error

	partNames := make(map[string]bool, len(api.Parts))
	for _, p := range api.Parts {
		if p.Name == "" {
			errs = append(errs, &ValidationError{
				Code:    "empty_name",
				Message: api.Name + ": parameter has no name",
			})
			continue
		}
		if partNames[p.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_parameter",
				Message: api.Name + ": duplicate parameter: " + p.Name,
			})
		}
		partNames[p.Name] = true
	}

	queryNames := make(map[string]bool, len(api.QueryParams))
	for _, q := range api.QueryParams {
		if queryNames[q] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_parameter",
				Message: api.Name + ": duplicate query parameter: " + q,
			})
		}
		queryNames[q] = true

		// A query parameter that collides with a named parameter would
		// render the name twice; reject it up front.
		if partNames[q] {
			errs = append(errs, &ValidationError{
				Code:    "parameter_collision",
				Message: api.Name + ": query parameter collides with named parameter: " + q,
			})
		}
	}

	if len(api.FuncParams) > 0 {
		declared := make(map[string]bool, len(api.FuncParams))
		for _, n := range api.FuncParams {
			declared[n] = true
		}
		for name := range partNames {
			if !declared[name] {
				errs = append(errs, &ValidationError{
					Code:    "inconsistent_func_params",
					Message: api.Name + ": FuncParams missing declared parameter: " + name,
				})
			}
		}
		if api.Body != nil && !declared["body"] {
			errs = append(errs, &ValidationError{
				Code:    "inconsistent_func_params",
				Message: api.Name + ": FuncParams missing body parameter",
			})
		}
	}

	return errs
}
