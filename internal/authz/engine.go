// Package authz is the single field-level authorization decision point.
package authz

import (
	"strings"

	"HRPolicyGateway/internal/models"
)

// Authorized reports whether caller may see subject's value of field.
// Self-access is always allowed for known fields; restricted fields are open
// to manager, hr and admin, sensitive fields to hr and admin. Unknown fields
// are denied.
func Authorized(field models.Field, subjectUser, callerUser string, callerRoles []models.Role) bool {
	class, ok := models.SensitivityOf(field)
	if !ok {
		return false
	}
	if isSelf(subjectUser, callerUser) {
		return true
	}

	switch class {
	case models.SensitivityPublic:
		return true
	case models.SensitivityRestricted:
		return models.HasAnyRole(callerRoles, models.RoleManager, models.RoleHR, models.RoleAdmin)
	case models.SensitivitySensitive:
		return models.HasAnyRole(callerRoles, models.RoleHR, models.RoleAdmin)
	}
	return false
}

func isSelf(subjectUser, callerUser string) bool {
	s := strings.TrimSpace(subjectUser)
	return s != "" && strings.EqualFold(s, strings.TrimSpace(callerUser))
}
