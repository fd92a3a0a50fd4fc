package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyDecisions(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	authz, err := NewAuthorizer(policy)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		role string
		perm string
		want bool
	}{
		{RoleAdmin, PermPayrollCredit, true},
		{RoleAdmin, PermEmployeesWrite, true},
		{RoleHR, PermPayrollWrite, true},
		{RoleHR, PermPayrollCredit, false},
		{RoleHR, PermAuditRead, false},
		{RoleHR, PermReportsRead, true},
		{RoleViewer, PermReportsRead, false},
		{RoleViewer, PermEmployeesRead, true},
		{RoleViewer, PermEmployeesWrite, false},
		{"ADMIN", PermPayrollRead, true},
		{"stranger", PermEmployeesRead, false},
	}
	for _, tt := range tests {
		got, err := authz.HasPermission(ctx, tt.role, tt.perm)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.role, tt.perm)
	}

	_, err = authz.HasPermission(ctx, RoleAdmin, "payroll")
	assert.Error(t, err)
}

func TestDefaultPolicyCoversEveryPermission(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.ElementsMatch(t, DefaultPermissions, policy.Roles[RoleAdmin])
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  auditor:\n    - payroll.read\n"), 0o600))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	authz, err := NewAuthorizer(policy)
	require.NoError(t, err)

	ok, err := authz.HasPermission(context.Background(), "auditor", PermPayrollRead)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = authz.HasPermission(context.Background(), RoleAdmin, PermPayrollRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParsePolicyRejectsBadInput(t *testing.T) {
	_, err := ParsePolicy([]byte("roles: {}\n"))
	assert.Error(t, err)

	policy, err := ParsePolicy([]byte("roles:\n  admin:\n    - nodot\n"))
	require.NoError(t, err)
	_, err = NewAuthorizer(policy)
	assert.Error(t, err)
}
