// Package access holds the role table that gates write and privileged read
// routes. The table is declared in permissions.yaml and loaded once at
// startup; a route asking for an undeclared pair panics during wiring.
package access

import (
	_ "embed"
	"fmt"
	"slices"

	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// Roles recognised by the auth gate.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleEditor  = "Editor"
	RoleViewer  = "Viewer"
)

// AllRoles lists every role, most privileged first.
var AllRoles = []string{RoleAdmin, RoleManager, RoleEditor, RoleViewer}

//go:embed permissions.yaml
var defaultTable []byte

// Table maps entity → action → allowed roles.
type Table map[string]map[string][]string

// Default parses the embedded permission table.
func Default() (Table, error) {
	return Parse(defaultTable)
}

// MustDefault is Default that panics on a malformed embedded table.
func MustDefault() Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Parse decodes a YAML table and checks every role name.
func Parse(raw []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("access: parse table: %w", err)
	}
	for entity, actions := range t {
		for action, roles := range actions {
			if len(roles) == 0 {
				return nil, fmt.Errorf("access: %s:%s has no roles", entity, action)
			}
			for _, r := range roles {
				if !slices.Contains(AllRoles, r) {
					return nil, fmt.Errorf("access: %s:%s names unknown role %q", entity, action, r)
				}
			}
		}
	}
	return t, nil
}

// Roles returns the roles allowed to perform action on entity.
func (t Table) Roles(entity, action string) ([]string, bool) {
	roles, ok := t[entity][action]
	return roles, ok
}

// Allowed reports whether any of held may perform action on entity.
func (t Table) Allowed(entity, action string, held []string) bool {
	roles, ok := t.Roles(entity, action)
	if !ok {
		return false
	}
	for _, h := range held {
		if slices.Contains(roles, h) {
			return true
		}
	}
	return false
}

// Require returns the gin middleware for one entry of the table.
func (t Table) Require(entity, action string) gin.HandlerFunc {
	roles, ok := t.Roles(entity, action)
	if !ok {
		panic(fmt.Sprintf("access: no permission entry for %s:%s", entity, action))
	}
	return httpkit.RequireRole(roles...)
}
