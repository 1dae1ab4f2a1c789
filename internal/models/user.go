package models

import "strings"

// 인증 주체 역할
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// 알 수 없는 역할 문자열도 그대로 보존함 (권한 부여는 없음)
func RolesFromStrings(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, Role(strings.ToLower(strings.TrimSpace(r))))
	}
	return roles
}

func RolesToStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}

// HasAnyRole reports whether roles intersects want.
func HasAnyRole(roles []Role, want ...Role) bool {
	for _, r := range roles {
		for _, w := range want {
			if r == w {
				return true
			}
		}
	}
	return false
}

// 사용자 식별자는 대소문자 구분 없음
func NormalizeUser(user string) string {
	return strings.ToLower(strings.TrimSpace(user))
}

// 로그인 자격 증명 (HRGW_REQUIRE_PASSWORD 사용 시)
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
