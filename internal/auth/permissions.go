package auth

import "errors"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Permissions per role.
var Permissions = map[string][]string{
	RoleAdmin: {
		"users:read",
		"products:read",
		"products:write",
		"notifications:broadcast",
		"notifications:read:all",
		"system:admin",
	},
	RoleClient: {
		"users:read:self",
		"orders:read:self",
		"notifications:read:self",
		"notifications:write:self",
	},
}

// HasPermission reports whether a role grants the permission.
func HasPermission(role, permission string) bool {
	permissions, exists := Permissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims belong to an administrator.
func IsAdmin(claims *Claims) bool {
	return claims.Role == RoleAdmin
}

// ValidateRole checks that the role is one the system knows.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleClient:
		return nil
	default:
		return errors.New("invalid role")
	}
}
