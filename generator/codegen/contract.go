package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/domainforge/domainforge/domain"
	"github.com/domainforge/domainforge/generator/templates"
)

// RouteContract is the single description of an entity's CRUD surface. The
// route generator and the API client generator both render from the same
// contract value, so path, method and payload shape cannot drift between the
// backend and the generated client.
type RouteContract struct {
	Entity   string
	BasePath string
	Ops      []RouteOperation
}

// RouteOperation is one CRUD endpoint: its HTTP shape, the schema names on
// the wire, and the roles allowed to call it.
type RouteOperation struct {
	Name   string
	Method string
	Path   string
	// RelPath is the path relative to the contract's BasePath, as mounted on
	// a router constructed with that prefix.
	RelPath        string
	RequestSchema  string
	ResponseSchema string
	Paginated      bool
	AllowedRoles   []string
}

// TSPath renders the operation path as a TypeScript template-literal body,
// substituting the id segment.
func (op RouteOperation) TSPath() string {
	return strings.ReplaceAll(op.Path, "{id}", "${encodeURIComponent(String(id))}")
}

// NewRouteContract derives the CRUD contract for an entity. Paths follow the
// pluralized snake_case convention the route templates emit.
func NewRouteContract(entity *domain.EntityDefinition) RouteContract {
	base := "/api/" + templates.Pluralize(templates.ToSnakeCase(entity.Name))
	pascal := templates.ToPascalCase(entity.Name)
	item := base + "/{id}"

	ops := []RouteOperation{
		{Name: "list", Method: "GET", Path: base, ResponseSchema: pascal + "Read", Paginated: true},
		{Name: "get", Method: "GET", Path: item, ResponseSchema: pascal + "Read"},
		{Name: "create", Method: "POST", Path: base, RequestSchema: pascal + "Create", ResponseSchema: pascal + "Read"},
		{Name: "update", Method: "PATCH", Path: item, RequestSchema: pascal + "Update", ResponseSchema: pascal + "Read"},
		{Name: "delete", Method: "DELETE", Path: item},
	}
	for i := range ops {
		ops[i].RelPath = strings.TrimPrefix(ops[i].Path, base)
		ops[i].AllowedRoles = allowedRoles(entity, ops[i].Name)
	}

	return RouteContract{Entity: entity.Name, BasePath: base, Ops: ops}
}

// allowedRoles returns the roles whose permission set covers the operation,
// sorted for deterministic output. An empty result means the operation is
// unrestricted.
func allowedRoles(entity *domain.EntityDefinition, op string) []string {
	var roles []string
	for role, ops := range entity.Permissions {
		for _, allowed := range ops {
			if allowed == op || allowed == "*" {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}

// PyRoles renders the allowed roles as a Python list literal, or an empty
// string when the operation is unrestricted.
func (op RouteOperation) PyRoles() string {
	if len(op.AllowedRoles) == 0 {
		return ""
	}
	out := "["
	for i, s := range op.AllowedRoles {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", s)
	}
	return out + "]"
}
