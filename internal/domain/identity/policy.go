package identity

import "strings"

// Grant allows a set of actions on a resource. Grants are carried in the
// JWT claims as "resource:action" strings and parsed once per request.
type Grant struct {
	Resource string
	Action   string
}

// ParseGrant parses a "resource:action" permission string.
// Malformed strings yield a zero Grant that never matches.
func ParseGrant(s string) Grant {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Grant{}
	}
	return Grant{Resource: parts[0], Action: parts[1]}
}

// ParseGrants parses a list of permission strings, dropping malformed entries
func ParseGrants(ss []string) []Grant {
	grants := make([]Grant, 0, len(ss))
	for _, s := range ss {
		g := ParseGrant(s)
		if g.Resource != "" {
			grants = append(grants, g)
		}
	}
	return grants
}

// Decision is the outcome of a policy evaluation
type Decision struct {
	Authorized bool
	Reason     string
}

// RoleAdmin holds every permission implicitly
const RoleAdmin = "ADMIN"

// Evaluate decides whether a caller with the given role and grants may
// perform action on resource. It is a pure function: same inputs, same
// decision, no hidden state.
func Evaluate(role string, grants []Grant, resource, action string) Decision {
	if resource == "" || action == "" {
		return Decision{Authorized: false, Reason: "resource and action are required"}
	}
	if strings.EqualFold(role, RoleAdmin) {
		return Decision{Authorized: true}
	}
	for _, g := range grants {
		if g.Resource != resource {
			continue
		}
		if g.Action == action || g.Action == "*" {
			return Decision{Authorized: true}
		}
	}
	return Decision{
		Authorized: false,
		Reason:     "missing grant " + resource + ":" + action,
	}
}

// EvaluateAny authorizes if any of the actions is granted on the resource
func EvaluateAny(role string, grants []Grant, resource string, actions ...string) Decision {
	for _, action := range actions {
		if d := Evaluate(role, grants, resource, action); d.Authorized {
			return d
		}
	}
	return Decision{Authorized: false, Reason: "no matching grant on " + resource}
}
