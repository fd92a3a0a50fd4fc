package auth

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Policy is the YAML role grant file.
type Policy struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPolicy reads the policy at path, or the built-in policy when path is empty.
func LoadPolicy(path string) (Policy, error) {
	raw := defaultPolicy
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Policy{}, fmt.Errorf("read policy: %w", err)
		}
		raw = data
	}
	return ParsePolicy(raw)
}

func ParsePolicy(raw []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return Policy{}, fmt.Errorf("parse policy: no roles defined")
	}
	return p, nil
}

// Authorizer answers permission checks from a casbin enforcer.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer(p Policy) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for role, perms := range p.Roles {
		for _, perm := range perms {
			obj, act, err := splitPermission(perm)
			if err != nil {
				return nil, fmt.Errorf("role %s: %w", role, err)
			}
			if _, err := enforcer.AddPolicy(strings.ToLower(role), obj, act); err != nil {
				return nil, err
			}
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) HasPermission(_ context.Context, role, permission string) (bool, error) {
	obj, act, err := splitPermission(permission)
	if err != nil {
		return false, err
	}
	return a.enforcer.Enforce(strings.ToLower(role), obj, act)
}

func splitPermission(perm string) (string, string, error) {
	obj, act, ok := strings.Cut(strings.TrimSpace(perm), ".")
	if !ok || obj == "" || act == "" {
		return "", "", fmt.Errorf("invalid permission %q", perm)
	}
	return obj, act, nil
}
