package authz

import (
	"testing"

	"HRPolicyGateway/internal/models"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

var (
	restricted = []models.Field{models.FieldYears, models.FieldTitle, models.FieldManager, models.FieldPTOBalance}
	sensitive  = []models.Field{models.FieldDOB, models.FieldSalary}
)

func roles(rs ...models.Role) []models.Role { return rs }

func TestAuthorized_RestrictedFields(t *testing.T) {
	for _, f := range restricted {
		assert.True(t, Authorized(f, "bob", "bob", nil), "self %s", f)
		assert.True(t, Authorized(f, "bob", "alice", roles(models.RoleManager)), "manager %s", f)
		assert.True(t, Authorized(f, "bob", "alice", roles(models.RoleHR)), "hr %s", f)
		assert.True(t, Authorized(f, "bob", "alice", roles(models.RoleAdmin)), "admin %s", f)
		assert.False(t, Authorized(f, "bob", "alice", roles(models.RoleEmployee)), "employee %s", f)
		assert.False(t, Authorized(f, "bob", "alice", nil), "no roles %s", f)
	}
}

func TestAuthorized_SensitiveFields(t *testing.T) {
	for _, f := range sensitive {
		assert.True(t, Authorized(f, "bob", "bob", roles(models.RoleEmployee)), "self %s", f)
		assert.True(t, Authorized(f, "bob", "alice", roles(models.RoleHR)), "hr %s", f)
		assert.True(t, Authorized(f, "bob", "alice", roles(models.RoleAdmin)), "admin %s", f)
		assert.False(t, Authorized(f, "bob", "alice", roles(models.RoleManager)), "manager %s", f)
		assert.False(t, Authorized(f, "bob", "alice", roles(models.RoleEmployee)), "employee %s", f)
	}
}

func TestAuthorized_UnknownFieldDenied(t *testing.T) {
	assert.False(t, Authorized("ssn", "bob", "bob", roles(models.RoleAdmin)))
	assert.False(t, Authorized("", "bob", "alice", roles(models.RoleHR)))
}

func TestAuthorized_UnknownRolesGrantNothing(t *testing.T) {
	assert.False(t, Authorized(models.FieldTitle, "bob", "alice", roles("wizard", "HR ")))
}

func TestAuthorized_SelfIsCaseInsensitive(t *testing.T) {
	assert.True(t, Authorized(models.FieldSalary, "Carol", "carol", nil))
	assert.False(t, Authorized(models.FieldSalary, "", "", nil))
}

func TestAuthorized_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	roleGen := gen.OneConstOf(models.RoleEmployee, models.RoleManager, models.Role("contractor"), models.Role("auditor"))
	sensitiveGen := gen.OneConstOf(models.FieldDOB, models.FieldSalary)
	anyRoleGen := gen.OneConstOf(models.RoleEmployee, models.RoleManager, models.RoleHR, models.RoleAdmin, models.Role("guest"))

	properties.Property("sensitive fields denied to other callers without hr/admin", prop.ForAll(
		func(f models.Field, subject, caller string, rs []models.Role) bool {
			if subject == caller {
				return true
			}
			return !Authorized(f, subject, caller, rs)
		},
		sensitiveGen,
		gen.Identifier(),
		gen.Identifier(),
		gen.SliceOf(roleGen),
	))

	properties.Property("self access to sensitive fields always allowed", prop.ForAll(
		func(f models.Field, subject string, rs []models.Role) bool {
			return Authorized(f, subject, subject, rs)
		},
		sensitiveGen,
		gen.Identifier(),
		gen.SliceOf(anyRoleGen),
	))

	properties.TestingRun(t)
}
