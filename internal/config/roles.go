package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Operations a role policy grants.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpExport = "export"
)

// Policy maps resource -> operation -> roles allowed to perform it.
type Policy map[string]map[string][]string

var (
	everyone = []string{"user", "admin", "superadmin"}
	admins   = []string{"admin", "superadmin"}
)

// DefaultPolicy is used for every entry the roles file leaves out.
func DefaultPolicy() Policy {
	crud := func(list, get []string) map[string][]string {
		return map[string][]string{
			OpList:   list,
			OpGet:    get,
			OpCreate: admins,
			OpUpdate: admins,
			OpDelete: admins,
		}
	}
	return Policy{
		"books":      crud(everyone, everyone),
		"authors":    crud(everyone, admins),
		"genres":     crud(everyone, admins),
		"publishers": crud(everyone, admins),
		"users":      crud(everyone, admins),
		"logs":       {OpList: admins},
		"export":     {OpExport: admins},
	}
}

// Allows reports whether role may perform op on resource. Unknown pairs are denied.
func (p Policy) Allows(resource, op, role string) bool {
	for _, r := range p[resource][op] {
		if r == role {
			return true
		}
	}
	return false
}

// LoadPolicy reads a YAML roles file on top of DefaultPolicy. A missing file yields
// the defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read roles file %s: %w", path, err)
	}

	var file Policy
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse roles file %s: %w", path, err)
	}
	for res, ops := range file {
		if p[res] == nil {
			p[res] = map[string][]string{}
		}
		for op, roles := range ops {
			p[res][op] = roles
		}
	}
	return p, nil
}
