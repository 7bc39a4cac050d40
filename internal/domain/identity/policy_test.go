package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGrant(t *testing.T) {
	assert.Equal(t, Grant{Resource: "invoices", Action: "delete"}, ParseGrant("invoices:delete"))
	assert.Equal(t, Grant{}, ParseGrant("invoices"))
	assert.Equal(t, Grant{}, ParseGrant(":delete"))
	assert.Equal(t, Grant{}, ParseGrant(""))
}

func TestEvaluate(t *testing.T) {
	grants := ParseGrants([]string{"invoices:read", "clients:*", "broken"})

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"exact grant", "USER", "invoices", "read", true},
		{"missing action", "USER", "invoices", "delete", false},
		{"wildcard action", "USER", "clients", "delete", true},
		{"unknown resource", "USER", "suppliers", "read", false},
		{"admin bypass", "ADMIN", "suppliers", "delete", true},
		{"admin case-insensitive", "admin", "anything", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.role, grants, tt.resource, tt.action)
			assert.Equal(t, tt.want, d.Authorized)
			if !tt.want {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}
}

func TestEvaluate_EmptyInputs(t *testing.T) {
	d := Evaluate("ADMIN", nil, "", "delete")
	assert.False(t, d.Authorized)
}

func TestEvaluateAny(t *testing.T) {
	grants := ParseGrants([]string{"reports:read"})

	assert.True(t, EvaluateAny("USER", grants, "reports", "export", "read").Authorized)
	assert.False(t, EvaluateAny("USER", grants, "reports", "export", "delete").Authorized)
}
